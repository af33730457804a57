package roster

// fakes_test.go holds the in-memory collaborators shared by the service
// tests. The fake store implements every storage port over plain maps and
// slices, with per-email failure injection so tests can exercise the
// row-isolation paths.

import (
	"context"
	"fmt"
	"strings"

	"github.com/capitolyouth/admin/internal/access"
	"github.com/google/uuid"
)

type fakeStore struct {
	year *ProgramYear

	users       map[string]*User
	delegates   []*Delegate
	staff       []*Staff
	parents     []*Parent
	links       map[string]struct{}
	assignments []*ProgramAssignment

	groupings []GroupingActivation
	parties   []PartyActivation

	failCreateDelegate map[string]error
	failUpdateDelegate map[uuid.UUID]error

	placementUpdates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		year: &ProgramYear{
			ID:          uuid.New(),
			ProgramID:   uuid.New(),
			ProgramName: "Youth Capitol Program",
			Year:        2026,
		},
		users:              make(map[string]*User),
		links:              make(map[string]struct{}),
		failCreateDelegate: make(map[string]error),
		failUpdateDelegate: make(map[uuid.UUID]error),
	}
}

// addAdmin registers a user with the admin role on the store's program and
// returns the caller identity tests pass into service operations.
func (f *fakeStore) addAdmin(email string) access.Caller {
	u := f.addUser(email)
	f.assignments = append(f.assignments, &ProgramAssignment{
		ID:        uuid.New(),
		UserID:    u.ID,
		ProgramID: f.year.ProgramID,
		Role:      RoleAdmin,
	})
	return access.Caller{UserID: u.ID, Email: email}
}

func accessCaller(u *User) access.Caller {
	return access.Caller{UserID: u.ID, Email: u.Email}
}

func (f *fakeStore) addUser(email string) *User {
	u := &User{ID: uuid.New(), Email: strings.ToLower(email)}
	f.users[u.Email] = u
	return u
}

func (f *fakeStore) addGrouping(name string) uuid.UUID {
	g := GroupingActivation{GroupingID: uuid.New(), Name: name, IsAssignmentLevel: true}
	f.groupings = append(f.groupings, g)
	return g.GroupingID
}

func (f *fakeStore) addParty(name string) uuid.UUID {
	p := PartyActivation{PartyID: uuid.New(), YearPartyID: uuid.New(), Name: name}
	f.parties = append(f.parties, p)
	return p.PartyID
}

func (f *fakeStore) addDelegate(email, status string, groupingID, partyID *uuid.UUID) *Delegate {
	d := &Delegate{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		ProgramYearID: f.year.ID,
		Email:         strings.ToLower(email),
		Status:        status,
		GroupingID:    groupingID,
		PartyID:       partyID,
	}
	f.delegates = append(f.delegates, d)
	return d
}

// IdentityStore

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := f.users[strings.ToLower(email)]; ok {
		return u, nil
	}
	return nil, nil
}

func (f *fakeStore) CreateUser(_ context.Context, email, passwordHash string) (*User, error) {
	u := &User{ID: uuid.New(), Email: strings.ToLower(email), PasswordHash: passwordHash}
	f.users[u.Email] = u
	return u, nil
}

// ParticipantStore

func (f *fakeStore) FindDelegate(_ context.Context, programYearID uuid.UUID, email string) (*Delegate, error) {
	for _, d := range f.delegates {
		if d.ProgramYearID == programYearID && d.Email == strings.ToLower(email) {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateDelegate(_ context.Context, p CreateDelegateParams) (*Delegate, error) {
	if err, ok := f.failCreateDelegate[p.Email]; ok {
		return nil, err
	}
	d := &Delegate{
		ID:            uuid.New(),
		UserID:        p.UserID,
		ProgramYearID: p.ProgramYearID,
		Email:         p.Email,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Phone:         p.Phone,
		Status:        p.Status,
	}
	f.delegates = append(f.delegates, d)
	return d, nil
}

func (f *fakeStore) ListDelegates(_ context.Context, programYearID uuid.UUID) ([]Delegate, error) {
	var out []Delegate
	for _, d := range f.delegates {
		if d.ProgramYearID == programYearID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateDelegatePlacement(_ context.Context, delegateID, groupingID, partyID uuid.UUID, status string) error {
	if err, ok := f.failUpdateDelegate[delegateID]; ok {
		return err
	}
	for _, d := range f.delegates {
		if d.ID == delegateID {
			gid, pid := groupingID, partyID
			d.GroupingID = &gid
			d.PartyID = &pid
			d.Status = status
			f.placementUpdates++
			return nil
		}
	}
	return fmt.Errorf("delegate %s not found", delegateID)
}

func (f *fakeStore) FindStaff(_ context.Context, programYearID uuid.UUID, email string) (*Staff, error) {
	for _, st := range f.staff {
		if st.ProgramYearID == programYearID && st.Email == strings.ToLower(email) {
			return st, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateStaff(_ context.Context, p CreateStaffParams) (*Staff, error) {
	st := &Staff{
		ID:            uuid.New(),
		UserID:        p.UserID,
		ProgramYearID: p.ProgramYearID,
		Email:         p.Email,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Phone:         p.Phone,
		Role:          p.Role,
		GroupingID:    p.GroupingID,
	}
	f.staff = append(f.staff, st)
	return st, nil
}

// ParentStore

func (f *fakeStore) FindParent(_ context.Context, programYearID uuid.UUID, email string) (*Parent, error) {
	for _, p := range f.parents {
		if p.ProgramYearID == programYearID && p.Email == strings.ToLower(email) {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateParent(_ context.Context, params CreateParentParams) (*Parent, error) {
	p := &Parent{
		ID:            uuid.New(),
		UserID:        params.UserID,
		ProgramYearID: params.ProgramYearID,
		Email:         strings.ToLower(params.Email),
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		Phone:         params.Phone,
	}
	f.parents = append(f.parents, p)
	return p, nil
}

func (f *fakeStore) FindOrCreateLink(_ context.Context, delegateID, parentID, _ uuid.UUID) error {
	f.links[delegateID.String()+"/"+parentID.String()] = struct{}{}
	return nil
}

// AssignmentStore

func (f *fakeStore) FindAssignment(_ context.Context, userID, programID uuid.UUID) (*ProgramAssignment, error) {
	for _, a := range f.assignments {
		if a.UserID == userID && a.ProgramID == programID {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateAssignment(_ context.Context, userID, programID uuid.UUID, role string) error {
	f.assignments = append(f.assignments, &ProgramAssignment{
		ID:        uuid.New(),
		UserID:    userID,
		ProgramID: programID,
		Role:      role,
	})
	return nil
}

// ReferenceStore

func (f *fakeStore) FindProgramYear(_ context.Context, programYearID uuid.UUID) (*ProgramYear, error) {
	if f.year != nil && f.year.ID == programYearID {
		return f.year, nil
	}
	return nil, nil
}

func (f *fakeStore) ListActiveGroupings(_ context.Context, _ uuid.UUID) ([]GroupingActivation, error) {
	return f.groupings, nil
}

func (f *fakeStore) ListActiveParties(_ context.Context, _ uuid.UUID) ([]PartyActivation, error) {
	return f.parties, nil
}

func (f *fakeStore) FilterKnownEmails(_ context.Context, emails []string) (map[string]struct{}, error) {
	known := make(map[string]struct{})
	for _, e := range emails {
		e = strings.ToLower(e)
		if _, ok := f.users[e]; ok {
			known[e] = struct{}{}
		}
	}
	return known, nil
}

// assignmentRole returns the program role recorded for the user with the
// given email, or "" when none exists.
func (f *fakeStore) assignmentRole(email string) string {
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return ""
	}
	for _, a := range f.assignments {
		if a.UserID == u.ID {
			return a.Role
		}
	}
	return ""
}

type fakeHasher struct {
	n int
}

func (h *fakeHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

func (h *fakeHasher) GenerateTempPassword() (string, error) {
	h.n++
	return fmt.Sprintf("temp-pass-%d", h.n), nil
}

type fakeMailer struct {
	sent    []WelcomeEmail
	sendErr error
	refuse  bool
}

func (m *fakeMailer) SendWelcomeEmail(_ context.Context, msg WelcomeEmail) (bool, error) {
	if m.sendErr != nil {
		return false, m.sendErr
	}
	if m.refuse {
		return false, nil
	}
	m.sent = append(m.sent, msg)
	return true, nil
}

// newTestService wires a service around the fake collaborators with a
// deterministic (identity) shuffle.
func newTestService(store *fakeStore, mailer *fakeMailer) *Service {
	s := NewService(Deps{
		Users:        store,
		Participants: store,
		Parents:      store,
		Assignments:  store,
		Refs:         store,
		Passwords:    &fakeHasher{},
		Mailer:       mailer,
	})
	s.shuffle = func(n int, swap func(i, j int)) {}
	return s
}
