package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := fmt.Errorf("boom")

	assert.Equal(t, KindOperation, KindOf(base))
	assert.Equal(t, KindTransient, KindOf(NewServiceError(KindTransient, "flickr.photosets.getList", base)))

	wrapped := fmt.Errorf("error listing albums: %w", NewServiceError(KindAlreadySatisfied, "flickr.photosets.addPhoto", base))
	assert.Equal(t, KindAlreadySatisfied, KindOf(wrapped))
	assert.ErrorIs(t, wrapped, base)
}

func TestKindOfUsesOutermostServiceError(t *testing.T) {
	inner := NewServiceError(KindTransient, "flickr.photos.delete", fmt.Errorf("rate limited"))
	outer := NewServiceError(KindOperation, "delete photo", fmt.Errorf("giving up after 3 attempts: %w", inner))

	assert.Equal(t, KindOperation, KindOf(outer))
	assert.True(t, IsKind(outer, KindOperation))
	assert.False(t, IsKind(nil, KindOperation))
}

func TestServiceErrorMessage(t *testing.T) {
	err := &ServiceError{Kind: KindAlreadySatisfied, Op: "flickr.photosets.addPhoto", Code: 3, Err: fmt.Errorf("Photo already in set")}
	assert.Equal(t, "flickr.photosets.addPhoto: already-satisfied (code 3): Photo already in set", err.Error())
}
