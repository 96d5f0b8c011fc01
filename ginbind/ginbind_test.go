package ginbind

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/neex/multidict"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRequest() *http.Request {
	body := strings.NewReader("a=post&b=form1&b=form2")
	r := httptest.NewRequest(http.MethodPost, "/submit?a=get&c=1&c=2", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.AddCookie(&http.Cookie{Name: "a", Value: "cookie"})
	r.AddCookie(&http.Cookie{Name: "session", Value: "s1"})
	return r
}

func TestNewParams(t *testing.T) {
	p, err := NewParams(newRequest())
	if err != nil {
		t.Fatal(err)
	}

	if got, want := p.Args.GetList("c"), []string{"1", "2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Args c = %q, want %q", got, want)
	}
	if got, want := p.Form.GetList("b"), []string{"form1", "form2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Form b = %q, want %q", got, want)
	}
	if got := p.Cookies.Get("session"); got != "s1" {
		t.Errorf("Cookies session = %q", got)
	}

	for key, want := range map[string]string{"a": "get", "b": "form2", "session": "s1"} {
		got, err := p.Values.Get(key)
		if err != nil || got != want {
			t.Errorf("Values.Get(%q) = %q, %v; want %q", key, got, err, want)
		}
	}
	if got := p.Values.Keys(); len(got) != 6 {
		t.Errorf("Values.Keys = %q, want a key per source entry", got)
	}
}

type submitForm struct {
	A       string   `form:"a" validate:"required"`
	B       []string `form:"b"`
	C       int      `form:"c"`
	Session string   `form:"session"`
}

func TestMiddlewareAndBind(t *testing.T) {
	var (
		form submitForm
		err  error
	)
	r := gin.New()
	r.Use(Middleware())
	r.POST("/submit", func(c *gin.Context) {
		err = Bind(c, &form)
		l := multidict.NewHeaderList(multidict.Header{Name: "X-Frame-Options", Value: "DENY"})
		l.Add("Set-Cookie", "a=1")
		l.Add("Set-Cookie", "b=2")
		WriteHeaders(c, l)
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newRequest())

	if err != nil {
		t.Fatal(err)
	}
	want := submitForm{A: "get", B: []string{"form1", "form2"}, C: 2, Session: "s1"}
	if !reflect.DeepEqual(form, want) {
		t.Errorf("Bind = %+v, want %+v", form, want)
	}
	if got, want := w.Header().Values("Set-Cookie"), []string{"a=1", "b=2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Set-Cookie = %q, want %q", got, want)
	}
	if got := w.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?x=1", nil)

	p, err := FromContext(c)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Args.Get("x"); got != "1" {
		t.Errorf("x = %q", got)
	}
	again, _ := FromContext(c)
	if again != p {
		t.Error("Params not cached in the context")
	}
}

func TestBindValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?c=1", nil)

	var form submitForm
	if err := Bind(c, &form); err == nil {
		t.Error("expected a validation error for missing a")
	}
}

func TestMiddlewareBadForm(t *testing.T) {
	r := gin.New()
	r.Use(Middleware())
	called := false
	r.POST("/", func(c *gin.Context) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if called {
		t.Error("handler ran after a form parse error")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func newMultipartRequest(t *testing.T) *http.Request {
	body := bytes.NewBuffer(nil)
	mw := multipart.NewWriter(body)
	for _, v := range []string{"x", "y"} {
		if err := mw.WriteField("b", v); err != nil {
			t.Fatal(err)
		}
	}
	fw, err := mw.CreateFormFile("upload", "notes.txt")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("line one\nline two\n"))
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodPost, "/submit?a=get", body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestNewParamsMultipart(t *testing.T) {
	p, err := NewParams(newMultipartRequest(t))
	if err != nil {
		t.Fatal(err)
	}

	if got, want := p.Form.GetList("b"), []string{"x", "y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Form b = %q, want %q", got, want)
	}
	if got, err := p.Values.Get("b"); err != nil || got != "y" {
		t.Errorf("Values.Get(b) = %q, %v; want y", got, err)
	}
	if got, _ := p.Values.Get("a"); got != "get" {
		t.Errorf("Values.Get(a) = %q, want get", got)
	}

	fhs := p.Files["upload"]
	if len(fhs) != 1 || fhs[0].Filename != "notes.txt" {
		t.Fatalf("Files = %v", p.Files)
	}
	f, err := fhs[0].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "line one\nline two\n" {
		t.Errorf("upload = %q", got)
	}
}

func TestNewParamsNoFiles(t *testing.T) {
	p, err := NewParams(newRequest())
	if err != nil {
		t.Fatal(err)
	}
	if p.Files == nil || len(p.Files) != 0 {
		t.Errorf("Files = %v, want empty map", p.Files)
	}
}

func TestFromContextForeignValue(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?x=1", nil)
	c.Set(contextKey, "not params")

	p, err := FromContext(c)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Args.Get("x"); got != "1" {
		t.Errorf("x = %q", got)
	}
	if v, _ := c.Get(contextKey); v != p {
		t.Error("parsed Params not stored in the context")
	}
}
