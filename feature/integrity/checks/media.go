package checks

import (
	"context"
	"fmt"
	"strings"

	"catalog-export/core/relocate"
	"catalog-export/core/storage"
)

// maxListed caps the offending references listed in a report; counts stay exact.
const maxListed = 100

// Catalog is a persisted content type whose media references can be scanned.
type Catalog interface {
	Name() string
	ScanMedia(ctx context.Context, fn func(key string, refs []relocate.Ref) error) error
}

// Finding is one media reference that breaks the relocation invariant.
type Finding struct {
	Key   string `json:"key"`
	Field string `json:"field"`
	URL   string `json:"url"`
}

// MediaReport summarizes the media references of one content type.
type MediaReport struct {
	ContentType  string    `json:"content_type"`
	Records      int       `json:"records"`
	References   int       `json:"references"`
	Relocated    int       `json:"relocated"`
	Transient    int       `json:"transient"`
	Missing      int       `json:"missing"`
	Verified     bool      `json:"verified"`
	TransientRef []Finding `json:"transient_refs"`
	MissingRef   []Finding `json:"missing_refs"`
}

// CheckMedia scans catalog and classifies every http(s) media reference as relocated
// (under the public URL of the bucket) or transient. With verify, relocated references
// are also looked up in the bucket and reported missing when the object is gone.
// Non-http references such as magnet links are not counted.
func CheckMedia(ctx context.Context, catalog Catalog, client storage.Client, cfg storage.Config, verify bool) (*MediaReport, error) {
	report := &MediaReport{
		ContentType:  catalog.Name(),
		Verified:     verify,
		TransientRef: []Finding{},
		MissingRef:   []Finding{},
	}
	base := storage.PublicURL(cfg, "")

	err := catalog.ScanMedia(ctx, func(key string, refs []relocate.Ref) error {
		report.Records++
		for _, ref := range refs {
			if !relocate.IsRemote(ref.URL) {
				continue
			}
			report.References++

			objectKey, ok := strings.CutPrefix(ref.URL, base)
			if !ok {
				report.Transient++
				if len(report.TransientRef) < maxListed {
					report.TransientRef = append(report.TransientRef, Finding{Key: key, Field: ref.Field, URL: ref.URL})
				}
				continue
			}

			report.Relocated++
			if !verify {
				continue
			}
			exists, err := storage.Exists(ctx, client, cfg.Bucket, objectKey)
			if err != nil {
				return err
			}
			if !exists {
				report.Missing++
				if len(report.MissingRef) < maxListed {
					report.MissingRef = append(report.MissingRef, Finding{Key: key, Field: ref.Field, URL: ref.URL})
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to check %s media: %w", catalog.Name(), err)
	}
	return report, nil
}
