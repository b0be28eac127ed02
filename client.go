package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-querystring/query"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// HTTPDoer is the transport surface the client depends on. *http.Client
// satisfies it, and tests swap in stubs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the payment API. It is safe for concurrent use and
// never retries on its own: every call maps to exactly one HTTP request.
type Client struct {
	baseURL       string
	version       string
	secretKey     string
	publicKey     string
	encryptionKey string
	httpClient    HTTPDoer
	logger        *logrus.Logger
	validate      *validator.Validate
}

// Compile-time check that Client implements the full API surface.
var _ API = (*Client)(nil)

// NewClient builds a Client from cfg, filling unset fields with defaults.
// The secret key is the only required field.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.SecretKey == "" {
		return nil, NewValidationError("secret_key", "a secret key is required")
	}

	cc := *cfg
	cc.withDefaults()

	logger := cc.Logger
	if logger == nil {
		logger = nopLogger()
	}

	return &Client{
		baseURL:       cc.BaseURL,
		version:       cc.APIVersion,
		secretKey:     cc.SecretKey,
		publicKey:     cc.PublicKey,
		encryptionKey: cc.EncryptionKey,
		httpClient:    cc.HTTPClient,
		logger:        logger,
		validate:      newValidate(),
	}, nil
}

// New builds a Client with default settings from a secret key alone.
func New(secretKey string) (*Client, error) {
	return NewClient(&Config{SecretKey: secretKey})
}

// PublicKey returns the publishable key configured on the client, for
// embedding in inline checkout pages.
func (c *Client) PublicKey() string {
	return c.publicKey
}

// Encrypt encrypts a card payload with the client's configured encryption
// key. See EncryptPayload.
func (c *Client) Encrypt(data string) (string, error) {
	return EncryptPayload(data, c.encryptionKey)
}

func nopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newValidate builds the request validator. Field names in validation
// errors come from the wire tags so callers see the names they sent.
func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "url"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	_ = v.RegisterValidation("amount", validAmount)
	return v
}

// validAmount accepts any string that parses as a positive decimal.
func validAmount(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.IsPositive()
}

// checkOptions validates an options struct before any network traffic.
func (c *Client) checkOptions(opts any) error {
	err := c.validate.Struct(opts)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return NewValidationError("options", "options must not be nil")
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return NewValidationError(fe.Field(), validationMessage(fe))
	}
	return NewValidationError("options", err.Error())
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "amount":
		return "must be a positive decimal amount"
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must contain at least " + fe.Param() + " entry"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed the '" + fe.Tag() + "' rule"
	}
}

// requirePathParam rejects empty path parameters before they can produce
// a malformed URL.
func requirePathParam(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(name, "is required")
	}
	return nil
}

// endpointURL joins the base URL, version segment and endpoint path. The
// path is appended verbatim, so references are sent exactly as given.
func (c *Client) endpointURL(path string) string {
	return strings.TrimRight(c.baseURL, "/") + "/" + c.version + path
}

// doRequest performs one HTTP round trip and returns the raw status code
// and body. Transport failures at any stage come back as *TransportError.
func (c *Client) doRequest(ctx context.Context, method, path, contentType string, body io.Reader) (int, []byte, error) {
	endpoint := c.endpointURL(path)

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, nil, &TransportError{Op: "build request", URL: endpoint, Err: err}
	}

	c.authorize(req)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"url":    endpoint,
	}).Debug("chapa: sending request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Op: "send request", URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Op: "read response", URL: endpoint, Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"url":      endpoint,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("chapa: received response")

	return resp.StatusCode, data, nil
}

// doJSON sends payload as a JSON request body.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, NewValidationError("body", err.Error())
	}
	return c.doRequest(ctx, method, path, "application/json", bytes.NewReader(raw))
}

// doForm sends form as an URL-encoded request body.
func (c *Client) doForm(ctx context.Context, method, path string, form url.Values) (int, []byte, error) {
	return c.doRequest(ctx, method, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

// doGet performs a bodiless GET.
func (c *Client) doGet(ctx context.Context, path string) (int, []byte, error) {
	return c.doRequest(ctx, http.MethodGet, path, "", nil)
}

// encodeForm turns an options struct into form values via its url tags.
func encodeForm(opts any) (url.Values, error) {
	form, err := query.Values(opts)
	if err != nil {
		return nil, NewValidationError("options", err.Error())
	}
	return form, nil
}

// listWithMeta fetches a listing endpoint where the rows sit in data and
// the paging block sits in a sibling meta object.
func listWithMeta[T any](ctx context.Context, c *Client, path, op string) ([]T, *ListMeta, error) {
	status, body, err := c.doGet(ctx, path)
	if err != nil {
		return nil, nil, wrapOp(op, err)
	}
	env, err := decodeEnvelope(status, body)
	if err != nil {
		return nil, nil, wrapOp(op, err)
	}
	rows, err := decodeData[[]T](env, status, body)
	if err != nil {
		return nil, nil, wrapOp(op, err)
	}
	var meta *ListMeta
	if present(env.Meta) {
		meta = new(ListMeta)
		if err := json.Unmarshal(env.Meta, meta); err != nil {
			return nil, nil, wrapOp(op, &DecodeError{StatusCode: status, RawBody: body, Err: err})
		}
	}
	return rows, meta, nil
}
