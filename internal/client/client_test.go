package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/placement/internal/app/models"
	"github.com/yigit/placement/internal/app/models/dto"
)

func TestClient_SetRole(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		name       string
		serverCode int
		serverBody string
		wantMsg    string
		wantErr    string
	}{
		{
			name:       "success",
			serverCode: http.StatusOK,
			serverBody: `{"message":"Role of Ravi updated Successfully"}`,
			wantMsg:    "Role of Ravi updated Successfully",
		},
		{
			name:       "denied message surfaced verbatim",
			serverCode: http.StatusBadRequest,
			serverBody: `{"success":false,"message":"You cannot change your own role","error":{"code":"AUTHZ_002"}}`,
			wantErr:    "You cannot change your own role",
		},
		{
			name:       "non-json body",
			serverCode: http.StatusBadGateway,
			serverBody: "upstream down",
			wantErr:    "upstream down",
		},
		{
			name:       "empty body",
			serverCode: http.StatusInternalServerError,
			wantErr:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPatch, r.Method)
				assert.Equal(t, "/api/v1/users/"+id+"/role", r.URL.Path)
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

				var req dto.UpdateRoleRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "admin", req.Role)

				w.WriteHeader(tt.serverCode)
				_, _ = w.Write([]byte(tt.serverBody))
			}))
			defer server.Close()

			msg, err := New(server.URL, "tok").SetRole(context.Background(), id, models.RoleAdmin)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, tt.serverCode, apiErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestClient_LoginAndMe(t *testing.T) {
	userID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			assert.Empty(t, r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: "tok", TokenType: "Bearer", ExpiresIn: 60})
		case "/api/v1/auth/me":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(dto.UserResponse{User: &models.User{ID: userID, Name: "Asha", Role: models.RoleAdmin}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	c := New(server.URL+"/", "")
	resp, err := c.Login(ctx, "asha@college.edu", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)

	me, err := c.WithToken(resp.Token).Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, userID, me.ID)
	assert.Empty(t, c.Token(), "WithToken must not mutate the original")
}

func TestClient_ListUsersNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "student", r.URL.Query().Get("role"))
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"No users found"}`))
	}))
	defer server.Close()

	_, err := New(server.URL, "tok").ListUsers(context.Background(), models.RoleStudent)
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "No users found")
}

func TestClient_Companies(t *testing.T) {
	created := &models.Company{ID: uuid.New(), Name: "Globex", CTC: 9}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/companies":
			var req dto.CompanyRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Globex", req.Name)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(created)
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/companies":
			_ = json.NewEncoder(w).Encode([]*models.Company{created})
		case r.Method == http.MethodDelete:
			_ = json.NewEncoder(w).Encode(dto.SuccessResponse{Message: "Company Globex deleted successfully"})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer server.Close()

	ctx := context.Background()
	c := New(server.URL, "tok")

	got, err := c.CreateCompany(ctx, &dto.CompanyRequest{Name: "Globex", CTC: 9})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	list, err := c.ListCompanies(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	msg, err := c.DeleteCompany(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Company Globex deleted successfully", msg)
}
