package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/trezcool/shule/apps/api/echo"
	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/user"
	testutil "github.com/trezcool/shule/tests"
)

func Test_authApi_loginStudent(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, usrRepo, "Hero", "std001", "hero@test.cd", "LePass123", []string{user.RoleStudent}, true)
	testutil.CreateUser(t, usrRepo, "", "std002", "anon@test.cd", "LePass123", []string{user.RoleStudent}, true)
	testutil.CreateUser(t, usrRepo, "N Dog", "std666", "ndog@test.cd", "LePass123", []string{user.RoleStudent}, false)
	testutil.CreateUser(t, usrRepo, "Prof", "tch001", "prof@test.cd", "LePass123", []string{user.RoleTeacher}, true)

	invalidCreds := marchallObj(t, httpErr{Error: "Invalid student ID or password."})

	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{"student_id": "std001"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "Please fill in all fields."}),
		},
		{
			name: "unknown student ID", body: []byte(`{"student_id": "lol", "password": "LePass123"}`),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
		{
			name: "wrong password", body: []byte(`{"student_id": "std001", "password": "lol"}`),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
		{
			name: "teacher cannot use student portal", body: []byte(`{"student_id": "tch001", "password": "LePass123"}`),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
		{
			name: "inactive account", body: []byte(`{"student_id": "std666", "password": "LePass123"}`),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
		{
			name: "login ok", body: []byte(`{"student_id": "std001", "password": "LePass123"}`),
			wantCode: http.StatusOK, extra: "Welcome, Hero!",
		},
		{
			name: "welcome falls back to student ID", body: []byte(`{"student_id": "std002", "password": "LePass123"}`),
			wantCode: http.StatusOK, extra: "Welcome, std002!",
		},
		{
			name: "student ID is case-insensitive", body: []byte(`{"student_id": "STD001", "password": "LePass123"}`),
			wantCode: http.StatusOK, extra: "Welcome, Hero!",
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/auth/login/student"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkLogin(t, tt, rec.Code, rec.Body.Bytes())
		})
	}
}

func Test_authApi_loginTeacher(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, usrRepo, "Prof", "tch001", "prof@test.cd", "LePass123", []string{user.RoleTeacher}, true)
	testutil.CreateUser(t, usrRepo, "Hero", "std001", "hero@test.cd", "LePass123", []string{user.RoleStudent}, true)

	invalidCreds := marchallObj(t, httpErr{Error: "Invalid teacher ID or password."})

	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "Please fill in all fields."}),
		},
		{
			name: "unknown teacher ID", body: []byte(`{"teacher_id": "lol", "password": "LePass123"}`),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
		{
			name: "student cannot use teacher portal", body: []byte(`{"teacher_id": "std001", "password": "LePass123"}`),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
		{
			name: "login ok", body: []byte(`{"teacher_id": "tch001", "password": "LePass123"}`),
			wantCode: http.StatusOK, extra: "Welcome back, Teacher Prof!",
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/auth/login/teacher"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkLogin(t, tt, rec.Code, rec.Body.Bytes())
		})
	}
}

func Test_authApi_loginAdmin(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, usrRepo, "Boss", "admin", "admin@test.cd", "LePass123", []string{user.RoleAdmin}, true)
	testutil.CreateUser(t, usrRepo, "Hero", "std001", "hero@test.cd", "LePass123", []string{user.RoleStudent}, true)

	invalidCreds := marchallObj(t, httpErr{Error: "Invalid admin credentials or insufficient permissions."})

	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{"admin_username": "admin"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "Please fill in all fields."}),
		},
		{
			name: "unknown username", body: []byte(`{"admin_username": "lol", "password": "LePass123"}`),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
		{
			name: "correct credentials without privilege", body: []byte(`{"admin_username": "std001", "password": "LePass123"}`),
			wantCode: http.StatusBadRequest, wantData: invalidCreds,
		},
		{
			name: "login ok", body: []byte(`{"admin_username": "admin", "password": "LePass123"}`),
			wantCode: http.StatusOK, extra: "Welcome, Administrator Boss!",
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/auth/login/admin"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkLogin(t, tt, rec.Code, rec.Body.Bytes())
		})
	}
}

// checkLogin verifies a login response; successful logins cannot be compared
// byte-for-byte since the token is not predictable.
func checkLogin(t *testing.T, tt httpTest, code int, body []byte) {
	if code != tt.wantCode {
		t.Fatalf("failed! code = %v; wantCode %v", code, tt.wantCode)
	}
	if tt.wantCode != http.StatusOK {
		ok, err := jsonBytesEqual(t, body, tt.wantData)
		if err != nil {
			t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
		}
		if !ok {
			t.Errorf("failed! data = %v; wantData %v", string(body), string(tt.wantData))
		}
		return
	}

	var respData echoapi.LoginResponse
	if err := json.Unmarshal(body, &respData); err != nil {
		t.Fatalf("json.Unmarshal() failed! err %v", err)
	}
	if respData.Token == "" {
		t.Error("failed! empty token")
	}
	if wantMsg, ok := tt.extra.(string); ok && respData.Message != wantMsg {
		t.Errorf("failed! message = %q; want %q", respData.Message, wantMsg)
	}
}

func Test_authApi_register(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, usrRepo, "Hero", "std001", "hero@test.cd", "LePass123", []string{user.RoleStudent}, true)

	tests := []httpTest{
		{
			name: "missing fields", body: []byte(`{"username": "newkid"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "Please fill in all required fields."}),
		},
		{
			name:     "password mismatch",
			body:     []byte(`{"username": "newkid", "email": "kid@test.cd", "password": "secret1", "confirm_password": "secret2"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"confirm_password": "Passwords do not match."}),
		},
		{
			name:     "password too short",
			body:     []byte(`{"username": "newkid", "email": "kid@test.cd", "password": "abc", "confirm_password": "abc"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"password": "Password must be at least 6 characters long."}),
		},
		{
			name:     "username taken",
			body:     []byte(`{"username": "std001", "email": "kid@test.cd", "password": "secret1", "confirm_password": "secret1"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"username": "Username already exists."}),
		},
		{
			name:     "email taken",
			body:     []byte(`{"username": "newkid", "email": "hero@test.cd", "password": "secret1", "confirm_password": "secret1"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"email": "Email already exists."}),
		},
		{
			name:     "registration ok",
			body:     []byte(`{"username": "newkid", "email": "kid@test.cd", "password": "secret1", "confirm_password": "secret1", "first_name": "New", "last_name": "Kid"}`),
			wantCode: http.StatusCreated, wantData: marchallObj(t, echoapi.SuccessResponse{Success: "Registration successful! You can now log in."}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/auth/register"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// self-registered accounts get the student role and can log in
	usr, err := usrRepo.GetUser(context.Background(), user.GetFilter{Username: "newkid"})
	if err != nil {
		t.Fatalf("GetUser() failed: %v", err)
	}
	if !usr.IsStudent() {
		t.Error("expected self-registered user to be a student")
	}

	req, rec := newRequest(http.MethodPost, "/v1/auth/login/student", []byte(`{"student_id": "newkid", "password": "secret1"}`))
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
}

func Test_authApi_refreshToken(t *testing.T) {
	app := setup(t)

	naughty := testutil.CreateUser(t, usrRepo, "N Dog", "ndog", "ndog@test.cd", "", []string{user.RoleStudent}, false)
	student := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)

	now := time.Now()
	unrefreshableClaims := &echoapi.Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    core.Conf.AppName,
			Subject:   student.ID,
			Audience:  "Shule",
			ExpiresAt: now.Add(core.Conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		OrigIssuedAt: now.Add(-2 * core.Conf.Server.JWTRefreshExpirationDelta).Unix(), // older than threshold
		Username:     student.Username,
		IsStudent:    true,
		Roles:        student.Roles,
	}
	unrefreshableToken, err := echoapi.GenerateToken(unrefreshableClaims)
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Inactive user not allowed", token: getToken(t, naughty), wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"})},
		{name: "Refresh period expired", token: unrefreshableToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "refresh has expired"})},
		{name: "Token refreshed", token: getToken(t, student), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/auth/token-refresh"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			// cannot guess new token.. just check that it's not empty
			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData echoapi.LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Errorf("json.Unmarshal() failed! err %v", err)
				}
				if respData.Token == "" {
					t.Error("failed! empty token")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_resetPassword(t *testing.T) {
	app := setup(t)

	testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "LePass123", []string{user.RoleStudent}, true)

	successData := marchallObj(t, echoapi.SuccessResponse{
		Success: "If the email address supplied is associated with an active account on this system, " +
			"an email will arrive in your inbox shortly with instructions to reset your password.",
	})

	tests := []httpTest{
		{
			name: "invalid email", body: []byte(`{"email": "lol"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"email": "email must be a valid email address"}),
		},
		// the success copy never leaks whether the account exists
		{name: "unknown email", body: []byte(`{"email": "ghost@test.cd"}`), wantCode: http.StatusOK, wantData: successData},
		{name: "known email", body: []byte(`{"email": "hero@test.cd"}`), wantCode: http.StatusOK, wantData: successData},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/auth/password-reset"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
