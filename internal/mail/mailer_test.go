package mail

import (
	"context"
	"strings"
	"testing"

	"github.com/capitolyouth/admin/internal/config"
	"github.com/capitolyouth/admin/internal/roster"
)

func TestSendWelcomeEmailFailsSoftWithoutRelay(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MailConfig
	}{
		{name: "mail disabled", cfg: config.MailConfig{Enabled: false, SMTPHost: "smtp.example.org"}},
		{name: "no relay host", cfg: config.MailConfig{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSMTPMailer(tt.cfg)
			sent, err := m.SendWelcomeEmail(context.Background(), roster.WelcomeEmail{Email: "x@example.org"})
			if err != nil {
				t.Fatalf("SendWelcomeEmail: %v", err)
			}
			if sent {
				t.Error("sent = true, want false without a configured relay")
			}
		})
	}
}

func TestBuildWelcomeBody(t *testing.T) {
	tests := []struct {
		name         string
		msg          roster.WelcomeEmail
		wantContains []string
		wantAbsent   []string
	}{
		{
			name: "delegate with temp password",
			msg: roster.WelcomeEmail{
				Email:        "jane@example.org",
				FirstName:    "Jane",
				LastName:     "Doe",
				ProgramName:  "Youth Capitol Program",
				Year:         2026,
				Kind:         roster.KindDelegate,
				TempPassword: "tmp-pass-1",
			},
			wantContains: []string{
				"To: jane@example.org",
				"Subject: Welcome to Youth Capitol Program 2026",
				"Hello Jane Doe",
				"registered as a delegate",
				"tmp-pass-1",
			},
		},
		{
			name: "staff body names the role",
			msg: roster.WelcomeEmail{
				Email:       "sam@example.org",
				FirstName:   "Sam",
				LastName:    "Lee",
				ProgramName: "Youth Capitol Program",
				Year:        2026,
				Kind:        roster.KindStaff,
				RoleLabel:   "counselor",
			},
			wantContains: []string{"counselor"},
			wantAbsent:   []string{"temporary password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := string(buildWelcomeBody("noreply@capitolyouth.org", tt.msg))

			for _, want := range tt.wantContains {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q:\n%s", want, body)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(body, absent) {
					t.Errorf("body must not contain %q", absent)
				}
			}
		})
	}
}
