package pricedash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
)

// contains http utils to deal with remote data providers.

// loggingTransport logs every round trip.
type loggingTransport struct {
	base http.RoundTripper
}

func (c *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := c.base.RoundTrip(req)
	if err != nil {
		log.Printf("%v %v%v failed: %v", req.Method, req.URL.Host, req.URL.Path, err)
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	return resp, nil
}

// NewClient returns an http.Client that logs its requests.
func NewClient() *http.Client {
	client := new(http.Client)
	client.Transport = &loggingTransport{http.DefaultTransport}
	return client
}

// StatusError is returned by GetJSON when the server does not answer 200 OK.
type StatusError struct {
	Code       int
	Status     string
	Host, Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot http GET %v%v: %v", e.Host, e.Path, e.Status)
}

// GetJSON performs an HTTP GET request and unmarshals the JSON response into the provided data structure.
func GetJSON(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status, Host: req.URL.Host, Path: req.URL.Path}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
