package artifact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbill/internal/config"
	"quickbill/internal/domain"
	"quickbill/internal/port"
)

type stubStorage struct {
	lastInput port.UploadInput
	out       *port.UploadOutput
	err       error
}

func (s *stubStorage) Upload(_ context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	s.lastInput = input
	return s.out, s.err
}

func TestStore_DurableReference(t *testing.T) {
	storage := &stubStorage{out: &port.UploadOutput{
		Location: "https://bills.s3.amazonaws.com/invoices/invoice_INV-001.pdf",
	}}
	store := NewStore(storage, &config.S3Config{Bucket: "bills"})

	ref := store.Store(context.Background(), []byte("%PDF-1.4"), "invoice_INV-001")

	assert.Equal(t, domain.ReferenceDurable, ref.Kind)
	assert.Equal(t, "https://bills.s3.amazonaws.com/invoices/invoice_INV-001.pdf", ref.URL)
	assert.False(t, ref.Inline())
	assert.Equal(t, "bills", storage.lastInput.Bucket)
	assert.Equal(t, "invoices/invoice_INV-001.pdf", storage.lastInput.Key)
	assert.Equal(t, "application/pdf", storage.lastInput.ContentType)
}

func TestStore_FallsBackOnUploadError(t *testing.T) {
	storage := &stubStorage{err: errors.New("access denied")}
	store := NewStore(storage, &config.S3Config{Bucket: "bills"})

	pdf := []byte("%PDF-1.4 fallback")
	ref := store.Store(context.Background(), pdf, "invoice_INV-002")

	assert.Equal(t, domain.ReferenceEphemeral, ref.Kind)
	assert.True(t, ref.Inline())

	data, err := ref.Data()
	require.NoError(t, err)
	assert.Equal(t, pdf, data)
}

func TestStore_FallsBackWhenUnconfigured(t *testing.T) {
	for _, store := range []*Store{
		NewStore(nil, &config.S3Config{Bucket: "bills"}),
		NewStore(&stubStorage{}, &config.S3Config{}),
		NewStore(nil, nil),
	} {
		ref := store.Store(context.Background(), []byte("%PDF-1.4"), "invoice_X")
		assert.Equal(t, domain.ReferenceEphemeral, ref.Kind)
	}
}

func TestParseReference(t *testing.T) {
	inline := InlineReference([]byte("%PDF-1.4"))
	assert.Equal(t, domain.ReferenceEphemeral, ParseReference(inline.URL).Kind)

	durable := ParseReference("https://bills.s3.amazonaws.com/invoices/invoice_1.pdf")
	assert.Equal(t, domain.ReferenceDurable, durable.Kind)
	assert.False(t, durable.Inline())

	_, err := durable.Data()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
