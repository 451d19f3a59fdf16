package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
	"github.com/yigit/placement/internal/pkg/auth"
)

// fakeServer serves just enough of the API for the CLI flows
type fakeServer struct {
	mu        sync.Mutex
	me        *models.User
	users     map[string]*models.User
	calls     []string
	deleteErr string
	listErr   string
}

func (f *fakeServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		token, _, err := auth.NewJWTService(auth.JWTConfig{SecretKey: "x", AccessTokenExp: time.Hour}).
			GenerateToken(f.me.ID, string(f.me.Role))
		assert.NoError(t, err)
		_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: token, User: f.me})
	})
	mux.HandleFunc("GET /api/v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		u, ok := f.users[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"User not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(dto.UserResponse{User: u})
	})
	mux.HandleFunc("GET /api/v1/users", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls = append(f.calls, "list")
		if f.listErr != "" {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": f.listErr})
			return
		}
		users := make([]*models.User, 0, len(f.users))
		for _, u := range f.users {
			users = append(users, u)
		}
		_ = json.NewEncoder(w).Encode(dto.UsersResponse{Users: users})
	})
	mux.HandleFunc("GET /api/v1/companies", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("DELETE /api/v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls = append(f.calls, "delete")
		if f.deleteErr != "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": f.deleteErr})
			return
		}
		u := f.users[r.PathValue("id")]
		delete(f.users, r.PathValue("id"))
		_ = json.NewEncoder(w).Encode(dto.SuccessResponse{Message: "Student " + u.Name + " deleted Successfully"})
	})
	return mux
}

func newFake() (*fakeServer, *models.User) {
	admin := &models.User{ID: uuid.New(), Name: "Asha", RollNo: "ADMIN-001", Role: models.RoleAdmin, PlacedAt: models.Placement{CompanyID: models.NotPlaced}}
	ravi := &models.User{ID: uuid.New(), Name: "Ravi", RollNo: "MCA21-014", Role: models.RoleStudent, PlacedAt: models.Placement{CompanyID: models.NotPlaced}}
	return &fakeServer{
		me:    admin,
		users: map[string]*models.User{admin.ID.String(): admin, ravi.ID.String(): ravi},
	}, ravi
}

func runCLI(t *testing.T, profile, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := &App{Out: &out, Err: &errOut, In: strings.NewReader(stdin), ProfilePath: profile}
	cmd := NewRootCmd(app)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLoginThenDeleteWithConfirmation(t *testing.T) {
	fake, ravi := newFake()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()
	profile := filepath.Join(t.TempDir(), "config.yaml")

	_, _, err := runCLI(t, profile, "", "login", "--server", server.URL, "--email", "asha@college.edu", "--password", "pw")
	require.NoError(t, err)

	p, err := LoadProfile(profile)
	require.NoError(t, err)
	assert.Equal(t, server.URL, p.Server)
	assert.NotEmpty(t, p.Token)

	out, _, err := runCLI(t, profile, "y\n", "students", "delete", ravi.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Are you sure you want to delete Ravi?")
	assert.Contains(t, out, "Student Ravi deleted Successfully")
	assert.Equal(t, []string{"delete", "list"}, fake.calls, "a successful mutation refreshes the list")
}

func TestDeclinedConfirmationMakesNoCall(t *testing.T) {
	fake, ravi := newFake()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()
	profile := filepath.Join(t.TempDir(), "config.yaml")

	_, _, err := runCLI(t, profile, "", "login", "--server", server.URL, "--email", "a@b.c", "--password", "pw")
	require.NoError(t, err)

	out, _, err := runCLI(t, profile, "n\n", "students", "delete", ravi.ID.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")
	assert.Empty(t, fake.calls)
}

func TestFailedMutationShowsServerMessageWithoutRefresh(t *testing.T) {
	fake, _ := newFake()
	fake.deleteErr = "You cannot delete your own account"
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()
	profile := filepath.Join(t.TempDir(), "config.yaml")

	_, _, err := runCLI(t, profile, "", "login", "--server", server.URL, "--email", "a@b.c", "--password", "pw")
	require.NoError(t, err)

	_, errOut, err := runCLI(t, profile, "", "students", "delete", fake.me.ID.String(), "--yes")
	require.Error(t, err)
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "You cannot delete your own account")
	assert.Equal(t, []string{"delete"}, fake.calls)
}

func TestRefreshFailureAfterDeleteIsAWarning(t *testing.T) {
	fake, ravi := newFake()
	fake.listErr = "Internal server error"
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()
	profile := filepath.Join(t.TempDir(), "config.yaml")

	_, _, err := runCLI(t, profile, "", "login", "--server", server.URL, "--email", "a@b.c", "--password", "pw")
	require.NoError(t, err)

	out, errOut, err := runCLI(t, profile, "", "students", "delete", ravi.ID.String(), "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Student Ravi deleted Successfully")
	assert.Contains(t, errOut, "could not refresh after delete")
	assert.Contains(t, errOut, "Internal server error")
	assert.Equal(t, []string{"delete", "list"}, fake.calls)
}

func TestStudentCannotSeeVerifyCommand(t *testing.T) {
	fake, ravi := newFake()
	fake.me = ravi
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()
	profile := filepath.Join(t.TempDir(), "config.yaml")

	_, _, err := runCLI(t, profile, "", "login", "--server", server.URL, "--email", "r@b.c", "--password", "pw")
	require.NoError(t, err)

	_, _, err = runCLI(t, profile, "", "students", "verify", uuid.NewString(), "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available to the Student role")
	assert.Empty(t, fake.calls)
}

func TestNotLoggedIn(t *testing.T) {
	_, _, err := runCLI(t, filepath.Join(t.TempDir(), "none.yaml"), "", "students", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}
