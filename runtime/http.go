// Package runtime implements Ironwood's external collaborators: the raw
// HTTP/1.1 client behind `fetch`, the subprocess runner behind `run`, the
// filesystem primitives behind the file operators, and line-buffered
// terminal I/O behind `ask`/`pause`/`say`. None of these ever panics or
// throws on transport failure — callers get a soft-fail result, per the
// language's collaborator contract.
package runtime

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FetchResult is what `fetch` reports back to the evaluator regardless of
// outcome: transport errors never propagate as Go errors past this type.
type FetchResult struct {
	Body   string
	Status int
	OK     bool
}

// HTTPClient is the seam the evaluator calls through for `fetch`, kept as
// an interface so tests can substitute a fake transport without opening
// real sockets.
type HTTPClient interface {
	Fetch(method, rawURL, body string, headers map[string]string) FetchResult
}

const maxRedirects = 8

type httpClient struct {
	dialTimeout time.Duration
	log         *slog.Logger
}

// NewHTTPClient builds an HTTPClient that logs each fetch through logger
// at debug level; pass slog.Default() to use the process-wide default.
func NewHTTPClient(logger *slog.Logger) HTTPClient {
	return &httpClient{dialTimeout: 10 * time.Second, log: logger}
}

func (c *httpClient) Fetch(method, rawURL, body string, headers map[string]string) FetchResult {
	if method == "" {
		method = "GET"
	}
	traceID := uuid.New().String()
	c.log.Debug("fetch", "trace", traceID, "method", method, "url", rawURL)
	redirects := 0
	for {
		status, respBody, location, err := c.doRequest(method, rawURL, body, headers)
		if err != nil {
			return FetchResult{Body: err.Error(), Status: 0, OK: false}
		}
		if status >= 300 && status < 400 && location != "" && redirects < maxRedirects {
			redirects++
			next, err := resolveRedirect(rawURL, location)
			if err != nil {
				return FetchResult{Body: err.Error(), Status: 0, OK: false}
			}
			rawURL = next
			method = "GET"
			body = ""
			continue
		}
		return FetchResult{Body: respBody, Status: status, OK: status >= 200 && status < 300}
	}
}

func resolveRedirect(base, location string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	l, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	return b.ResolveReference(l).String(), nil
}

// doRequest performs exactly one HTTP/1.1 round trip over a raw socket,
// closing the connection on every return path. An https:// URL dials a
// TLS connection; see DESIGN.md for why plain-TCP-only was widened.
func (c *httpClient) doRequest(method, rawURL, body string, headers map[string]string) (status int, respBody string, location string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, "", "", err
	}
	host := u.Hostname()
	port := u.Port()
	useTLS := u.Scheme == "https"
	if port == "" {
		if useTLS {
			port = "443"
		} else {
			port = "80"
		}
	}

	var conn net.Conn
	addr := net.JoinHostPort(host, port)
	if useTLS {
		conn, err = tls.DialWithDialer(&net.Dialer{Timeout: c.dialTimeout}, "tcp", addr, &tls.Config{ServerName: host})
	} else {
		conn, err = net.DialTimeout("tcp", addr, c.dialTimeout)
	}
	if err != nil {
		return 0, "", "", err
	}
	defer conn.Close()

	path := u.RequestURI()
	if path == "" {
		path = "/"
	}

	hdr := map[string]string{}
	for k, v := range headers {
		hdr[k] = v
	}
	if _, ok := hdr["Content-Type"]; !ok && body != "" {
		hdr["Content-Type"] = "application/x-www-form-urlencoded"
	}
	hdr["Host"] = u.Host
	hdr["Connection"] = "close"
	if body != "" {
		hdr["Content-Length"] = strconv.Itoa(len(body))
	}

	var req strings.Builder
	fmt.Fprintf(&req, "%s %s HTTP/1.1\r\n", method, path)
	for k, v := range hdr {
		fmt.Fprintf(&req, "%s: %s\r\n", k, v)
	}
	req.WriteString("\r\n")
	req.WriteString(body)

	if _, err := conn.Write([]byte(req.String())); err != nil {
		return 0, "", "", err
	}

	reader := bufio.NewReader(conn)
	statusLine, err := reader.ReadString('\n')
	if err != nil {
		return 0, "", "", err
	}
	status, err = parseStatusLine(statusLine)
	if err != nil {
		return 0, "", "", err
	}

	respHeaders := map[string]string{}
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return 0, "", "", err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if idx := strings.Index(line, ":"); idx >= 0 {
			k := strings.TrimSpace(line[:idx])
			v := strings.TrimSpace(line[idx+1:])
			respHeaders[strings.ToLower(k)] = v
		}
	}

	var bodyBytes []byte
	if strings.EqualFold(respHeaders["transfer-encoding"], "chunked") {
		bodyBytes, err = readChunked(reader)
	} else if cl, ok := respHeaders["content-length"]; ok {
		n, _ := strconv.Atoi(cl)
		buf := make([]byte, n)
		_, err = io.ReadFull(reader, buf)
		bodyBytes = buf
	} else {
		bodyBytes, err = io.ReadAll(reader)
	}
	if err != nil && err != io.EOF {
		return 0, "", "", err
	}

	return status, string(bodyBytes), respHeaders["location"], nil
}

func parseStatusLine(line string) (int, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return 0, fmt.Errorf("malformed status line %q", line)
	}
	return strconv.Atoi(parts[1])
}

func readChunked(r *bufio.Reader) ([]byte, error) {
	var out []byte
	for {
		sizeLine, err := r.ReadString('\n')
		if err != nil {
			return out, err
		}
		sizeLine = strings.TrimSpace(strings.SplitN(sizeLine, ";", 2)[0])
		size, err := strconv.ParseInt(sizeLine, 16, 64)
		if err != nil {
			return out, err
		}
		if size == 0 {
			// Trailing headers (if any) followed by the final CRLF.
			for {
				l, err := r.ReadString('\n')
				if err != nil || strings.TrimRight(l, "\r\n") == "" {
					break
				}
			}
			return out, nil
		}
		buf := make([]byte, size)
		if _, err := io.ReadFull(r, buf); err != nil {
			return out, err
		}
		out = append(out, buf...)
		// Consume the trailing CRLF after each chunk.
		if _, err := r.ReadString('\n'); err != nil {
			return out, err
		}
	}
}
