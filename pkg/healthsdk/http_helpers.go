package healthsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// GenericError is reported when neither the server nor the transport gave a
// usable message.
const GenericError = "unable to reach the HealthMate server"

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

func (c *Client) do(ctx context.Context, method, path string, payload any) Result {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Result{Error: fmt.Sprintf("encode request: %v", err)}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return Result{Error: transportMessage(err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Result{Error: transportMessage(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Status: resp.StatusCode, Error: transportMessage(err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{Status: resp.StatusCode, Error: parseErrorMessage(resp.StatusCode, data)}
	}
	return Result{OK: true, Status: resp.StatusCode, Data: data}
}

// parseErrorMessage prefers the server's message, then an error_description
// description, then a status based fallback.
func parseErrorMessage(status int, body []byte) string {
	var er ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil {
		switch {
		case er.Message != "":
			return er.Message
		case er.ErrorDescription != "":
			return er.ErrorDescription
		case er.Error != "":
			return er.Error
		}
	}
	return fmt.Sprintf("request failed (HTTP %d)", status)
}

func transportMessage(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		if uerr.Timeout() {
			return "request timed out"
		}
		err = uerr.Err
	}
	if err == nil || err.Error() == "" {
		return GenericError
	}
	return err.Error()
}
