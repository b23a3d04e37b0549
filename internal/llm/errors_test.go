package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/googleapi"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), KindTransient},
		{"canceled", context.Canceled, KindUnknown},
		{"unauthorized", &googleapi.Error{Code: http.StatusUnauthorized}, KindConfiguration},
		{"rate limited", &googleapi.Error{Code: http.StatusTooManyRequests, Message: "slow down"}, KindTransient},
		{"quota exhausted", &googleapi.Error{Code: http.StatusTooManyRequests, Message: "Quota exceeded for project"}, KindConfiguration},
		{"server error", &googleapi.Error{Code: http.StatusBadGateway}, KindTransient},
		{"quota wording", errors.New("insufficient_quota: check your plan"), KindConfiguration},
		{"api key wording", errors.New("API key not valid"), KindConfiguration},
		{"unavailable wording", errors.New("rpc error: code = Unavailable"), KindTransient},
		{"other", errors.New("boom"), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(ProviderGemini, tt.err)
			var se *ServiceError
			assert.ErrorAs(t, err, &se)
			assert.Equal(t, tt.want, se.Kind)
			assert.Equal(t, ProviderGemini, se.Provider)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestClassify_KeepsExistingServiceError(t *testing.T) {
	original := &ServiceError{Kind: KindConfiguration, Provider: ProviderOpenAI, Message: "x"}
	assert.Same(t, original, Classify(ProviderGemini, original))
	assert.Nil(t, Classify(ProviderGemini, nil))
}

func TestServiceError_Helpers(t *testing.T) {
	transient := &ServiceError{Kind: KindTransient, Message: "timeout"}
	config := &ServiceError{Kind: KindConfiguration, Message: "quota"}

	assert.True(t, IsTransient(fmt.Errorf("wrapped: %w", transient)))
	assert.False(t, IsConfiguration(transient))
	assert.True(t, IsConfiguration(config))
	assert.False(t, IsTransient(errors.New("plain")))
	assert.Contains(t, config.Error(), "configuration")
}
