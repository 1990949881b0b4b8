package http

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// DigestAuth performs the HTTP digest handshake: it issues an
// unauthenticated preflight request, parses the WWW-Authenticate
// challenge from the 401 answer, computes the digest response and
// returns the resulting Authorization header for the retried request.
// If the preflight does not come back 401 no header is attached.
type DigestAuth struct {
	Username string
	Password string
}

func (a *DigestAuth) Apply(ctx context.Context, transport Transport, req *Request) (map[string]string, error) {
	preflight, err := transport.RoundTrip(ctx, req.Clone())
	if err != nil {
		return nil, fmt.Errorf("digest preflight: %w", err)
	}
	if preflight.StatusCode != 401 {
		return nil, nil
	}

	challenge := preflight.Header("WWW-Authenticate")
	if challenge == "" {
		return nil, nil
	}
	params := parseChallenge(challenge)

	cred := digestCredentials{
		username: a.Username,
		password: a.Password,
		realm:    params["realm"],
		nonce:    params["nonce"],
		opaque:   params["opaque"],
		qop:      params["qop"],
		method:   req.Method,
		uri:      requestURI(req.URL),
	}

	if cred.qop != "" {
		// Prefer plain "auth" when the server offers a list.
		if strings.Contains(cred.qop, "auth") {
			cred.qop = "auth"
		}
		cred.nc = "00000001"
		cred.cnonce, err = generateCnonce()
		if err != nil {
			return nil, err
		}
	}

	return map[string]string{"Authorization": cred.authorizationHeader()}, nil
}

type digestCredentials struct {
	username string
	password string
	realm    string
	nonce    string
	uri      string
	qop      string
	nc       string
	cnonce   string
	opaque   string
	method   string
}

// parseChallenge splits a WWW-Authenticate digest challenge into its
// key="value" parameters.
func parseChallenge(header string) map[string]string {
	result := make(map[string]string)
	header = strings.TrimPrefix(header, "Digest ")
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if idx := strings.Index(part, "="); idx != -1 {
			key := strings.TrimSpace(part[:idx])
			value := strings.Trim(strings.TrimSpace(part[idx+1:]), `"`)
			result[key] = value
		}
	}
	return result
}

// response computes the digest response hash per RFC 7616 (MD5).
func (d *digestCredentials) response() string {
	ha1 := md5Hex(fmt.Sprintf("%s:%s:%s", d.username, d.realm, d.password))
	ha2 := md5Hex(fmt.Sprintf("%s:%s", d.method, d.uri))
	if d.qop == "auth" || d.qop == "auth-int" {
		return md5Hex(fmt.Sprintf("%s:%s:%s:%s:%s:%s", ha1, d.nonce, d.nc, d.cnonce, d.qop, ha2))
	}
	return md5Hex(fmt.Sprintf("%s:%s:%s", ha1, d.nonce, ha2))
}

func (d *digestCredentials) authorizationHeader() string {
	parts := []string{
		fmt.Sprintf(`username="%s"`, d.username),
		fmt.Sprintf(`realm="%s"`, d.realm),
		fmt.Sprintf(`nonce="%s"`, d.nonce),
		fmt.Sprintf(`uri="%s"`, d.uri),
		fmt.Sprintf(`response="%s"`, d.response()),
	}
	if d.qop != "" {
		parts = append(parts,
			fmt.Sprintf(`qop=%s`, d.qop),
			fmt.Sprintf(`nc=%s`, d.nc),
			fmt.Sprintf(`cnonce="%s"`, d.cnonce))
	}
	if d.opaque != "" {
		parts = append(parts, fmt.Sprintf(`opaque="%s"`, d.opaque))
	}
	return "Digest " + strings.Join(parts, ", ")
}

// requestURI extracts the path+query portion used in HA2.
func requestURI(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.RequestURI()
}

func generateCnonce() (string, error) {
	b := make([]byte, 8)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func md5Hex(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}
