// Package ginbind exposes gin request data as multidict containers and
// writes header lists to gin responses.
package ginbind

import (
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/neex/multidict"
)

const contextKey = "multidict.params"

// MaxMemory is how much of a multipart body is kept in memory, the rest of
// the uploaded files go to temporary files.
var MaxMemory int64 = 32 << 20

// Params holds the request data of one request. Values looks keys up in
// Args, then Form, then Cookies.
type Params struct {
	Args    *multidict.MultiDict
	Form    *multidict.MultiDict
	Cookies *multidict.MultiDict
	Values  *multidict.MergedView

	// Files holds the uploaded files of a multipart body.
	Files map[string][]*multipart.FileHeader
}

// NewParams parses the query string and form body of r. Both urlencoded
// and multipart bodies are read into Form.
func NewParams(r *http.Request) (*Params, error) {
	if err := r.ParseForm(); err != nil {
		return nil, errors.Wrap(err, "parse form")
	}
	form := r.PostForm
	files := map[string][]*multipart.FileHeader{}

	if isMultipart(r) {
		if err := r.ParseMultipartForm(MaxMemory); err != nil {
			return nil, errors.Wrap(err, "parse multipart form")
		}
		form = url.Values(r.MultipartForm.Value)
		for name, fhs := range r.MultipartForm.File {
			files[name] = fhs
		}
	}

	p := &Params{
		Args:    multidict.FromValues(r.URL.Query()),
		Form:    multidict.FromValues(form),
		Cookies: &multidict.MultiDict{},
		Files:   files,
	}
	for _, c := range r.Cookies() {
		p.Cookies.Append(c.Name, c.Value)
	}
	p.Values = multidict.NewMergedView(p.Args, p.Form, p.Cookies)
	return p, nil
}

// Middleware parses every request into Params. Requests whose form cannot
// be parsed are aborted with 400.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := NewParams(c.Request)
		if err != nil {
			_ = c.AbortWithError(http.StatusBadRequest, err)
			return
		}
		c.Set(contextKey, p)
		c.Next()
	}
}

// FromContext returns the Params stored by Middleware. If the middleware
// did not run, the request is parsed on the spot.
func FromContext(c *gin.Context) (*Params, error) {
	if v, ok := c.Get(contextKey); ok {
		if p, ok := v.(*Params); ok {
			return p, nil
		}
	}
	p, err := NewParams(c.Request)
	if err != nil {
		return nil, err
	}
	c.Set(contextKey, p)
	return p, nil
}

// Bind decodes and validates the request values into out, resolving each
// key the way Params.Values does.
func Bind(c *gin.Context, out interface{}) error {
	p, err := FromContext(c)
	if err != nil {
		return err
	}
	return multidict.Bind(p.Values.Collapse(), out)
}

// WriteHeaders adds the headers of l to the response.
func WriteHeaders(c *gin.Context, l *multidict.HeaderList) {
	l.Get("").Apply(c.Writer.Header())
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
