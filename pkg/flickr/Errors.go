package flickr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"slices"

	"github.com/adampresley/flickralbums/pkg/models"
)

var retryStatusCodes = []int{
	429, // Too Many Requests
	500, // Internal Server Error
	502, // Bad Gateway
	503, // Service Unavailable
	504, // Gateway Timeout
	509, // Bandwidth Limit Exceeded
}

// Flickr API codes that mean "try again later" for any method.
var transientAPICodes = []int{
	105, // Service currently unavailable
	106, // Write operation failed
}

// Per method API codes meaning the mutation's goal already holds.
var satisfiedAPICodes = map[string][]int{
	methodAddPhoto:    {3}, // Photo already in set
	methodDeleteAlbum: {1}, // Photoset not found
	methodDeletePhoto: {1}, // Photo not found
}

func classifyStatus(method string, statusCode int) error {
	if slices.Contains(retryStatusCodes, statusCode) {
		return &models.ServiceError{
			Kind: models.KindTransient,
			Op:   method,
			Code: statusCode,
			Err:  fmt.Errorf("http status %d", statusCode),
		}
	}

	if statusCode >= 400 {
		return &models.ServiceError{
			Kind: models.KindOperation,
			Op:   method,
			Code: statusCode,
			Err:  fmt.Errorf("http status %d", statusCode),
		}
	}

	return nil
}

func classifyTransport(ctx context.Context, method string, err error) error {
	var (
		netErr net.Error
		urlErr *url.Error
	)

	if ctx.Err() != nil {
		return models.NewServiceError(models.KindOperation, method, err)
	}

	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return models.NewServiceError(models.KindTransient, method, err)
	}

	return models.NewServiceError(models.KindOperation, method, err)
}

func classifyEnvelope(method string, env *envelope) error {
	if env.Stat == "ok" {
		return nil
	}

	code := 0
	message := "request failed with status '" + env.Stat + "'"

	if env.Err != nil {
		code = env.Err.Code
		message = env.Err.Message
	}

	kind := models.KindOperation

	switch {
	case slices.Contains(satisfiedAPICodes[method], code):
		kind = models.KindAlreadySatisfied
	case slices.Contains(transientAPICodes, code):
		kind = models.KindTransient
	}

	return &models.ServiceError{
		Kind: kind,
		Op:   method,
		Code: code,
		Err:  errors.New(message),
	}
}
