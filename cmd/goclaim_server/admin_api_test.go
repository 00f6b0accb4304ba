package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/goclaim/internal/config"
	"github.com/kdudkov/goclaim/internal/model"
)

type TestApp struct {
	*App
	srv *HttpServer
}

func Admin(username, pass string) *model.Admin {
	a := &model.Admin{ID: uuid.NewString(), Username: username, Role: "admin"}

	if err := a.SetPassword(pass); err != nil {
		panic(err)
	}

	return a
}

func NewTestApp(t *testing.T) *TestApp {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	dir := t.TempDir()

	cfg := config.NewAppConfig()
	cfg.Set("db", ":memory:")
	cfg.Set("uploads_dir", filepath.Join(dir, "uploads"))
	cfg.Set("examples_dir", filepath.Join(dir, "examples"))
	cfg.Set("token_key", "test-key")

	app := &TestApp{App: NewApp(cfg)}

	require.NoError(t, app.dbm.Migrate())
	require.NoError(t, app.files.Start())

	app.srv = NewHttp(app.App)

	return app
}

func (app *TestApp) Req(method, url, token string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, url, body)

	if err != nil {
		return nil, err
	}

	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}

	return app.srv.f.Test(req, 3000)
}

func (app *TestApp) PostJSON(url, token string, obj any) (*http.Response, error) {
	d, err := json.Marshal(obj)

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewReader(d))

	if err != nil {
		return nil, err
	}

	req.Header.Add(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Add(fiber.HeaderAccept, fiber.MIMEApplicationJSON)

	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}

	return app.srv.f.Test(req, 3000)
}

func (app *TestApp) PutJSON(url, token string, obj any) (*http.Response, error) {
	d, err := json.Marshal(obj)

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("PUT", url, bytes.NewReader(d))

	if err != nil {
		return nil, err
	}

	req.Header.Add(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}

	return app.srv.f.Test(req, 3000)
}

func (app *TestApp) PostForm(u string, values url.Values) (*http.Response, error) {
	req, err := http.NewRequest("POST", u, strings.NewReader(values.Encode()))

	if err != nil {
		return nil, err
	}

	req.Header.Add(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return app.srv.f.Test(req, 3000)
}

func (app *TestApp) PostFile(url, token, filename string, data []byte) (*http.Response, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}

	if _, err := fw.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", url, buf)

	if err != nil {
		return nil, err
	}

	req.Header.Add(fiber.HeaderContentType, w.FormDataContentType())

	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}

	return app.srv.f.Test(req, 3000)
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	m := make(map[string]any)
	require.NotNil(t, resp.Body)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))

	return m
}

func (app *TestApp) login(t *testing.T, username, password string) string {
	t.Helper()

	resp, err := app.PostJSON("/api/admin/login", "", fiber.Map{"username": username, "password": password})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m := decode(t, resp)
	require.Equal(t, "bearer", m["token_type"])
	require.NotEmpty(t, m["access_token"])

	return m["access_token"].(string)
}

func TestLogin(t *testing.T) {
	app := NewTestApp(t)

	app.dbm.Save(Admin("adm1", "111"))

	for _, d := range []struct {
		username string
		psw      string
		ok       bool
	}{
		{"adm1", "111", true},
		{"adm1", "1111", false},
		{"nosuchuser", "111", false},
	} {
		t.Run("login_as_"+d.username+"_"+d.psw, func(t *testing.T) {
			resp, err := app.PostJSON("/api/admin/login", "", fiber.Map{"username": d.username, "password": d.psw})
			require.NoError(t, err)

			if d.ok {
				require.Equal(t, fiber.StatusOK, resp.StatusCode)
			} else {
				require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
				// no username enumeration signal
				require.Equal(t, "Invalid username or password", decode(t, resp)["detail"])
			}
		})
	}
}

func TestCheck(t *testing.T) {
	app := NewTestApp(t)

	app.dbm.Save(Admin("adm1", "111"))

	token := app.login(t, "adm1", "111")

	resp, err := app.Req("GET", "/api/admin/check", token, nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m := decode(t, resp)
	require.Equal(t, "adm1", m["username"])
	require.Equal(t, true, m["authenticated"])

	// no token
	resp, err = app.Req("GET", "/api/admin/check", "", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// garbage token
	resp, err = app.Req("GET", "/api/admin/check", "not-a-token", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredToken(t *testing.T) {
	app := NewTestApp(t)

	app.dbm.Save(Admin("adm1", "111"))

	app.config.Set("token_ttl", "-1h")

	token, err := app.issueToken("adm1")
	require.NoError(t, err)

	resp, err := app.Req("GET", "/api/admin/check", token, nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestFirstRunRegister(t *testing.T) {
	app := NewTestApp(t)

	resp, err := app.PostJSON("/api/admin/register", "", fiber.Map{"username": "boss", "password": "secret"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	app.login(t, "boss", "secret")

	// registration closes once an admin exists
	resp, err = app.PostJSON("/api/admin/register", "", fiber.Map{"username": "other", "password": "secret"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateManual(t *testing.T) {
	app := NewTestApp(t)

	app.dbm.Save(Admin("adm1", "111"))
	token := app.login(t, "adm1", "111")

	resp, err := app.PostJSON("/api/admin/create-manual", token,
		fiber.Map{"username": "adm2", "password": "222", "nome": "Mario", "email": "mario@example.com"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m := decode(t, resp)
	require.Equal(t, "adm2", m["username"])
	require.Equal(t, "adm1", m["created_by"])
	// the hash must never leak
	require.NotContains(t, m, "password")

	// duplicate username
	resp, err = app.PostJSON("/api/admin/create-manual", token, fiber.Map{"username": "adm2", "password": "x"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	app.login(t, "adm2", "222")
}

func TestAdminDelete(t *testing.T) {
	app := NewTestApp(t)

	me := Admin("adm1", "111")
	other := Admin("adm2", "222")
	app.dbm.Save(me)
	app.dbm.Save(other)

	token := app.login(t, "adm1", "111")

	resp, err := app.Req("DELETE", "/api/admin/delete/"+me.ID, token, nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Req("DELETE", "/api/admin/delete/"+other.ID, token, nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Req("DELETE", "/api/admin/delete/"+other.ID, token, nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	require.Nil(t, app.dbm.AdminQuery().Username("adm2").One())
}

func TestInviteFlow(t *testing.T) {
	app := NewTestApp(t)

	app.dbm.Save(Admin("adm1", "111"))
	token := app.login(t, "adm1", "111")

	resp, err := app.PostJSON("/api/admin/invite", token,
		fiber.Map{"nome": "Mario", "cognome": "Rossi", "email": "mario.rossi@example.com"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m := decode(t, resp)
	inviteToken := m["token"].(string)
	require.NotEmpty(t, inviteToken)
	require.Equal(t, "/admin/register/"+inviteToken, m["invite_url"])

	// public validation
	resp, err = app.Req("GET", "/api/admin/invite/validate/"+inviteToken, "", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	m = decode(t, resp)
	require.Equal(t, true, m["valid"])
	require.Equal(t, "Mario", m["nome"])

	resp, err = app.Req("GET", "/api/admin/invite/validate/nosuchtoken", "", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// redeem
	resp, err = app.PostJSON("/api/admin/register-with-invite", "",
		fiber.Map{"token": inviteToken, "username": "mrossi", "password": "pass"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	app.login(t, "mrossi", "pass")

	adm := app.dbm.AdminQuery().Username("mrossi").One()
	require.NotNil(t, adm)
	require.Equal(t, "Mario", adm.Name)
	require.Equal(t, "adm1", adm.CreatedBy)

	// an invite is single use
	resp, err = app.PostJSON("/api/admin/register-with-invite", "",
		fiber.Map{"token": inviteToken, "username": "again", "password": "pass"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, err = app.Req("GET", "/api/admin/invite/validate/"+inviteToken, "", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// listing requires auth
	resp, err = app.Req("GET", "/api/admin/invites", token, nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestInviteRegisterNeedsToken(t *testing.T) {
	app := NewTestApp(t)

	app.dbm.Save(Admin("adm1", "111"))
	token := app.login(t, "adm1", "111")

	resp, err := app.PostJSON("/api/admin/invite", token, fiber.Map{"nome": "Mario", "email": "m@example.com"})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// a pending invite must not be redeemable without its token
	for _, body := range []fiber.Map{
		{"username": "attacker", "password": "pass"},
		{"token": "", "username": "attacker", "password": "pass"},
	} {
		resp, err = app.PostJSON("/api/admin/register-with-invite", "", body)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	}

	require.Nil(t, app.dbm.AdminQuery().Username("attacker").One())

	for _, i := range app.dbm.InviteQuery().Get() {
		require.False(t, i.Used)
	}
}

func TestAdminList(t *testing.T) {
	app := NewTestApp(t)

	app.dbm.Save(Admin("adm1", "111"))
	app.dbm.Save(Admin("adm2", "222"))

	token := app.login(t, "adm1", "111")

	resp, err := app.Req("GET", "/api/admin/list", token, nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var admins []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&admins))
	require.Len(t, admins, 2)

	resp, err = app.Req("GET", "/api/admin/list", "", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRoot(t *testing.T) {
	app := NewTestApp(t)

	resp, err := app.Req("GET", "/api/", "", nil)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Ricorsi API v1.0", decode(t, resp)["message"])
}
