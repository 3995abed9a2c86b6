package report

import (
	"context"
	"strings"

	"github.com/agentstation/plugsync/pkg/logging"
	"github.com/agentstation/plugsync/pkg/reconciler"
)

// Comment is one entry in an external comment thread.
type Comment struct {
	ID   string
	Body string
}

// Commenter is the external comment thread a summary is published to.
type Commenter interface {
	List(ctx context.Context) ([]Comment, error)
	Create(ctx context.Context, body string) error
	Update(ctx context.Context, id, body string) error
}

// Publish posts the rendered summary to the thread. If a prior summary
// comment exists (body starts with Marker), it is updated in place;
// otherwise a new comment is created.
func Publish(ctx context.Context, commenter Commenter, result *reconciler.Result) error {
	logger := logging.FromContext(ctx)
	body := Render(result)

	comments, err := commenter.List(ctx)
	if err != nil {
		return err
	}

	for _, comment := range comments {
		if strings.HasPrefix(comment.Body, Marker) {
			logger.Debug().Str("comment_id", comment.ID).Msg("Updating existing summary comment")
			return commenter.Update(ctx, comment.ID, body)
		}
	}

	logger.Debug().Msg("Creating summary comment")
	return commenter.Create(ctx, body)
}
