package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateStoreDefaults(t *testing.T) {
	store := NewTemplateStore()

	for _, recipient := range []RecipientType{RecipientPatient, RecipientDoctor} {
		for _, channel := range []Channel{ChannelEmail, ChannelSMS} {
			template := store.Get(recipient, channel)
			require.NotNil(t, template, "missing default for %s/%s", recipient, channel)
			assert.NotEmpty(t, template.Body)
			if channel == ChannelEmail {
				assert.NotEmpty(t, template.Subject)
			} else {
				assert.Empty(t, template.Subject)
			}
		}
	}
}

func TestTemplateStoreRoundTrip(t *testing.T) {
	store := NewTemplateStore()

	updated := MessageTemplate{Subject: "Hello {patientName}", Body: "See you on {date}"}
	require.True(t, store.Update(RecipientPatient, ChannelEmail, updated))

	got := store.Get(RecipientPatient, ChannelEmail)
	require.NotNil(t, got)
	assert.Equal(t, updated, *got)
}

func TestTemplateStoreUnknownSlot(t *testing.T) {
	store := NewTemplateStore()

	assert.Nil(t, store.Get("nurse", ChannelEmail))
	assert.Nil(t, store.Get(RecipientPatient, "fax"))
	assert.False(t, store.Update("nurse", ChannelEmail, MessageTemplate{Body: "x"}))
	assert.False(t, store.Update(RecipientPatient, "fax", MessageTemplate{Body: "x"}))

	// A rejected update must not create the slot.
	assert.Nil(t, store.Get("nurse", ChannelEmail))
}

func TestTemplateStoreGetReturnsCopy(t *testing.T) {
	store := NewTemplateStore()

	template := store.Get(RecipientPatient, ChannelSMS)
	require.NotNil(t, template)
	template.Body = "mutated"

	assert.NotEqual(t, "mutated", store.Get(RecipientPatient, ChannelSMS).Body)
}
