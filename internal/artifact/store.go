// Package artifact stores rendered invoice documents. Uploads go to durable
// object storage; any failure degrades to a session-local ephemeral reference
// so that document sharing stays possible with no cloud credentials at all.
package artifact

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"quickbill/internal/config"
	"quickbill/internal/domain"
	"quickbill/internal/port"
)

const dataURIPrefix = "data:application/pdf;base64,"

// Reference points at a stored document. Durable references are externally
// fetchable URLs; ephemeral references embed the document as a data URI and
// are valid only within the current session.
type Reference struct {
	Kind domain.ReferenceKind `json:"kind"`
	URL  string               `json:"url"`
}

// Inline reports whether the reference embeds the document bytes rather than
// pointing at a fetchable location.
func (r Reference) Inline() bool {
	return strings.HasPrefix(r.URL, dataURIPrefix)
}

// Data returns the embedded document bytes of an inline reference.
func (r Reference) Data() ([]byte, error) {
	if !r.Inline() {
		return nil, fmt.Errorf("%w: reference is not inline", domain.ErrInvalidInput)
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(r.URL, dataURIPrefix))
}

// ParseReference classifies an externally supplied document reference.
func ParseReference(url string) Reference {
	if strings.HasPrefix(url, dataURIPrefix) {
		return Reference{Kind: domain.ReferenceEphemeral, URL: url}
	}
	return Reference{Kind: domain.ReferenceDurable, URL: url}
}

// InlineReference wraps raw PDF bytes as an ephemeral inline reference.
func InlineReference(pdf []byte) Reference {
	return Reference{
		Kind: domain.ReferenceEphemeral,
		URL:  dataURIPrefix + base64.StdEncoding.EncodeToString(pdf),
	}
}

// Store uploads invoice PDFs under invoices/<name>.pdf.
type Store struct {
	storage port.ObjectStorage
	bucket  string
}

// NewStore creates an artifact store. Storage may be nil when object storage
// is not configured; every Store call then yields an ephemeral reference.
func NewStore(storage port.ObjectStorage, cfg *config.S3Config) *Store {
	bucket := ""
	if cfg != nil {
		bucket = cfg.Bucket
	}
	return &Store{storage: storage, bucket: bucket}
}

// Store uploads the document and returns a durable reference. It never
// returns an error: on any failure (missing configuration, auth, network) it
// logs the cause and falls back to an ephemeral inline reference.
func (s *Store) Store(ctx context.Context, pdf []byte, suggestedName string) Reference {
	if s.storage == nil || s.bucket == "" {
		log.Printf("artifact.Store: object storage not configured, using ephemeral reference for %s", suggestedName)
		return InlineReference(pdf)
	}

	key := fmt.Sprintf("invoices/%s.pdf", suggestedName)
	out, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(pdf),
		ContentType: "application/pdf",
	})
	if err != nil {
		log.Printf("artifact.Store: upload of %s failed, using ephemeral reference: %v", key, err)
		return InlineReference(pdf)
	}

	log.Printf("artifact.Store: uploaded %s to %s", key, out.Location)
	return Reference{Kind: domain.ReferenceDurable, URL: out.Location}
}
