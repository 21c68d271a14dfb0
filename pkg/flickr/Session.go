/*
Package flickr adapts Flickr's REST and upload APIs to the photo host
contract used by the album services. Requests are signed with OAuth1 through
masci's Flickr client; responses are decoded here and every failure is
classified into a models.ErrorKind before it leaves the package.
*/
package flickr

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/adampresley/flickralbums/pkg/models"
	flickrapi "gopkg.in/masci/flickr.v3"
)

const (
	defaultBaseURL       = "https://api.flickr.com"
	defaultUploadBaseURL = "https://up.flickr.com"
	restPath             = "/services/rest/"
	uploadPath           = "/services/upload/"
)

type SessionConfig struct {
	APIKey           string
	APISecret        string
	OAuthToken       string
	OAuthTokenSecret string
	UserID           string

	// BaseURL replaces both the REST and upload hosts when set.
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

/*
Session is an authenticated Flickr session. It is an immutable value: each
call builds and signs its own request, so nothing one call does can change
how the next one is sent.
*/
type Session struct {
	apiKey           string
	apiSecret        string
	oauthToken       string
	oauthTokenSecret string
	userID           string
	restEndpoint     string
	uploadEndpoint   string
	httpClient       *http.Client
}

func NewSession(config SessionConfig) (Session, error) {
	if config.APIKey == "" || config.APISecret == "" {
		return Session{}, models.NewServiceError(models.KindSetup, "flickr session", fmt.Errorf("api key and api secret are required"))
	}

	if config.OAuthToken == "" || config.OAuthTokenSecret == "" {
		return Session{}, models.NewServiceError(models.KindSetup, "flickr session", fmt.Errorf("oauth token and token secret are required"))
	}

	httpClient := config.HTTPClient

	if httpClient == nil {
		timeout := config.Timeout

		if timeout <= 0 {
			timeout = 2 * time.Minute
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	restBase := defaultBaseURL
	uploadBase := defaultUploadBaseURL

	if config.BaseURL != "" {
		restBase = strings.TrimSuffix(config.BaseURL, "/")
		uploadBase = restBase
	}

	return Session{
		apiKey:           config.APIKey,
		apiSecret:        config.APISecret,
		oauthToken:       config.OAuthToken,
		oauthTokenSecret: config.OAuthTokenSecret,
		userID:           config.UserID,
		restEndpoint:     restBase + restPath,
		uploadEndpoint:   uploadBase + uploadPath,
		httpClient:       httpClient,
	}, nil
}

func (s Session) signedClient(verb, endpoint string, args url.Values) *flickrapi.FlickrClient {
	client := flickrapi.NewFlickrClient(s.apiKey, s.apiSecret)
	client.OAuthToken = s.oauthToken
	client.OAuthTokenSecret = s.oauthTokenSecret

	client.Init()
	client.EndpointUrl = endpoint
	client.HTTPVerb = verb

	for key, values := range args {
		for _, value := range values {
			client.Args.Add(key, value)
		}
	}

	client.OAuthSign()
	return client
}

func (s Session) get(ctx context.Context, method string, args url.Values, out response) error {
	return s.call(ctx, http.MethodGet, method, args, out)
}

func (s Session) post(ctx context.Context, method string, args url.Values, out response) error {
	return s.call(ctx, http.MethodPost, method, args, out)
}

func (s Session) call(ctx context.Context, verb, method string, args url.Values, out response) error {
	var (
		err error
		req *http.Request
	)

	if args == nil {
		args = url.Values{}
	}

	args.Set("method", method)
	client := s.signedClient(verb, s.restEndpoint, args)

	if verb == http.MethodPost {
		req, err = http.NewRequestWithContext(ctx, verb, s.restEndpoint, strings.NewReader(client.Args.Encode()))

		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, verb, s.restEndpoint+"?"+client.Args.Encode(), nil)
	}

	if err != nil {
		return models.NewServiceError(models.KindOperation, method, fmt.Errorf("error building request: %w", err))
	}

	return s.send(ctx, method, req, out)
}

func (s Session) upload(ctx context.Context, body io.Reader, filename, title string, out response) error {
	var (
		err  error
		req  *http.Request
		part io.Writer
	)

	const method = "upload"

	client := s.signedClient(http.MethodPost, s.uploadEndpoint, url.Values{"title": {title}})

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for key, values := range client.Args {
		for _, value := range values {
			if err = writer.WriteField(key, value); err != nil {
				return models.NewServiceError(models.KindOperation, method, fmt.Errorf("error writing upload field '%s': %w", key, err))
			}
		}
	}

	if part, err = writer.CreateFormFile("photo", filename); err != nil {
		return models.NewServiceError(models.KindOperation, method, fmt.Errorf("error creating upload part for '%s': %w", filename, err))
	}

	if _, err = io.Copy(part, body); err != nil {
		return models.NewServiceError(models.KindOperation, method, fmt.Errorf("error reading '%s': %w", filename, err))
	}

	if err = writer.Close(); err != nil {
		return models.NewServiceError(models.KindOperation, method, fmt.Errorf("error closing upload body: %w", err))
	}

	if req, err = http.NewRequestWithContext(ctx, http.MethodPost, s.uploadEndpoint, buf); err != nil {
		return models.NewServiceError(models.KindOperation, method, fmt.Errorf("error building upload request: %w", err))
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	return s.send(ctx, method, req, out)
}

func (s Session) send(ctx context.Context, method string, req *http.Request, out response) error {
	var (
		err  error
		resp *http.Response
		body []byte
	)

	if resp, err = s.httpClient.Do(req); err != nil {
		return classifyTransport(ctx, method, err)
	}

	defer resp.Body.Close()

	if err = classifyStatus(method, resp.StatusCode); err != nil {
		return err
	}

	if body, err = io.ReadAll(resp.Body); err != nil {
		return classifyTransport(ctx, method, err)
	}

	if err = xml.Unmarshal(body, out); err != nil {
		return models.NewServiceError(models.KindOperation, method, fmt.Errorf("unexpected response payload: %w", err))
	}

	return classifyEnvelope(method, out.status())
}
