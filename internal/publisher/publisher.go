package publisher

import (
	"context"
	"log"

	"github.com/wsatriyadi/blogger-auto-post/internal/blogger"
	"github.com/wsatriyadi/blogger-auto-post/internal/loader"
)

// Inserter is the single remote operation the publisher needs. The concrete
// implementation is *blogger.Client; tests substitute a fake.
type Inserter interface {
	InsertPost(ctx context.Context, blogID string, post blogger.Post, isDraft bool) (*blogger.PostInfo, error)
}

// Report aggregates the outcome of one batch.
type Report struct {
	Posted []blogger.PostInfo
	Failed int
}

func (r *Report) Published() int { return len(r.Posted) }

// Publish submits records one at a time, in input order, blocking on each
// call. One record's failure is logged and counted but never aborts the
// batch, so Publish itself cannot fail.
func Publish(ctx context.Context, ins Inserter, blogID string, records []loader.PostRecord, isDraft bool) *Report {
	report := &Report{}

	for _, rec := range records {
		post := blogger.Post{
			Title:   rec.Title,
			Content: rec.Content,
			Labels:  rec.Labels,
		}

		info, err := ins.InsertPost(ctx, blogID, post, isDraft)
		if err != nil {
			log.Printf("Failed to post %q (row %d): %v", rec.Title, rec.Row, err)
			report.Failed++
			continue
		}

		log.Printf("Successfully created post: %s (%s)", info.Title, info.URL)
		report.Posted = append(report.Posted, *info)
	}

	return report
}
