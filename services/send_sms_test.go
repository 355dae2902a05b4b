package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeMessages struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (f *fakeMessages) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.params = params
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSMS_SendSMS(t *testing.T) {
	api := &fakeMessages{}
	sms := &TwilioSMS{api: api, from: "+15550000000"}

	require.NoError(t, sms.SendSMS(context.Background(), "+15551112222", "hello"))
	assert.Equal(t, "+15551112222", *api.params.To)
	assert.Equal(t, "+15550000000", *api.params.From)
	assert.Equal(t, "hello", *api.params.Body)

	failing := &TwilioSMS{api: &fakeMessages{err: errors.New("bad number")}, from: "+1"}
	assert.Error(t, failing.SendSMS(context.Background(), "+2", "x"))
}
