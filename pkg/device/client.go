// Package device talks to a Sagemcom-style modem over its XMO JSON API.
package device

import (
	"context"
	"crypto/md5"
	"crypto/sha512"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Encryption selects the credential hash the modem firmware expects.
type Encryption string

const (
	EncryptionMD5    Encryption = "MD5"
	EncryptionSHA512 Encryption = "SHA512"
)

// ParseEncryption maps a config string to an Encryption, defaulting to
// SHA512 like recent firmware.
func ParseEncryption(s string) Encryption {
	if strings.EqualFold(s, string(EncryptionMD5)) {
		return EncryptionMD5
	}
	return EncryptionSHA512
}

var (
	ErrLoginFailed  = errors.New("modem login failed")
	ErrRequestError = errors.New("modem rejected request")
)

const endpoint = "/cgi/json-req"

// Client is a session-scoped XMO API client. Requests are form-posted JSON
// envelopes; each one is signed with a hash of the credentials, the server
// nonce from login, a client nonce and the running request counter.
// Not safe for concurrent use; the poller is single-threaded anyway.
type Client struct {
	baseURL  string
	username string
	password string
	enc      Encryption

	httpClient *http.Client

	sessionID   int64
	serverNonce string
	requestID   int
}

func NewClient(hostname, username, password string, enc Encryption) *Client {
	return &Client{
		baseURL:  "https://" + hostname,
		username: username,
		password: password,
		enc:      enc,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				// Modems ship self-signed certificates.
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

type action struct {
	ID         int            `json:"id"`
	Method     string         `json:"method"`
	XPath      string         `json:"xpath,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// Login opens a session. Any previous session state is discarded.
func (c *Client) Login(ctx context.Context) error {
	c.sessionID = 0
	c.serverNonce = ""
	c.requestID = 0

	reply, err := c.do(ctx, action{
		Method: "logIn",
		Parameters: map[string]any{
			"user":       c.username,
			"persistent": "TRUE",
			"session-options": map[string]any{
				"language": "ident",
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	params := reply.Get("actions.0.callbacks.0.parameters")
	c.sessionID = params.Get("id").Int()
	c.serverNonce = params.Get("nonce").String()
	if c.sessionID == 0 {
		return fmt.Errorf("%w: no session id in reply", ErrLoginFailed)
	}
	return nil
}

// GetValueByXPath fetches the raw JSON subtree at xpath (e.g. "Device").
func (c *Client) GetValueByXPath(ctx context.Context, xpath string) ([]byte, error) {
	reply, err := c.do(ctx, action{Method: "getValue", XPath: xpath})
	if err != nil {
		return nil, err
	}
	value := reply.Get("actions.0.callbacks.0.parameters.value")
	if !value.Exists() {
		return nil, fmt.Errorf("%w: empty value for xpath %s", ErrRequestError, xpath)
	}
	return []byte(value.Raw), nil
}

// Logout ends the session. Errors are non-fatal for callers; the modem
// expires sessions on its own.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, action{Method: "logOut"})
	return err
}

func (c *Client) do(ctx context.Context, a action) (gjson.Result, error) {
	a.ID = 0
	cnonce := uuid.NewString()

	envelope := map[string]any{
		"request": map[string]any{
			"id":         c.requestID,
			"session-id": c.sessionID,
			"priority":   false,
			"cnonce":     cnonce,
			"auth-key":   c.authKey(cnonce),
			"actions":    []action{a},
		},
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return gjson.Result{}, err
	}

	form := url.Values{"req": {string(body)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, err
	}
	defer resp.Body.Close()
	log.Printf("Device: %s %s -> %d", a.Method, c.baseURL+endpoint, resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return gjson.Result{}, fmt.Errorf("%w: status %d", ErrRequestError, resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}

	reply := gjson.GetBytes(raw, "reply")
	if desc := reply.Get("error.description").String(); desc != "XMO_REQUEST_NO_ERR" {
		return gjson.Result{}, fmt.Errorf("%w: %s", ErrRequestError, desc)
	}
	c.requestID++
	return reply, nil
}

// authKey signs one request. The credential never crosses the wire in the
// clear: the modem compares against the same derivation.
func (c *Client) authKey(cnonce string) string {
	credential := c.hash(c.username + ":" + c.serverNonce + ":" + c.hash(c.password))
	return c.hash(fmt.Sprintf("%s:%d:%s:JSON", credential, c.requestID, cnonce))
}

func (c *Client) hash(s string) string {
	if c.enc == EncryptionMD5 {
		sum := md5.Sum([]byte(s))
		return hex.EncodeToString(sum[:])
	}
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}
