package github

import (
	"context"
	"fmt"

	"github.com/agentstation/plugsync/pkg/report"
)

// CommentThread posts run summaries to a pull request's comment thread.
// Issue and PR comments share the same API.
type CommentThread struct {
	client *Client
	repo   string // owner/name
	number int
}

// NewCommentThread creates a thread handle for one pull request.
func NewCommentThread(client *Client, repo string, number int) *CommentThread {
	return &CommentThread{client: client, repo: repo, number: number}
}

type commentResponse struct {
	ID   int64  `json:"id"`
	Body string `json:"body"`
}

// List implements report.Commenter.
func (t *CommentThread) List(ctx context.Context) ([]report.Comment, error) {
	var resp []commentResponse
	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", t.client.baseURL, t.repo, t.number)
	if err := t.client.client.Get(ctx, url, &resp); err != nil {
		return nil, err
	}

	comments := make([]report.Comment, len(resp))
	for i, c := range resp {
		comments[i] = report.Comment{ID: fmt.Sprintf("%d", c.ID), Body: c.Body}
	}
	return comments, nil
}

// Create implements report.Commenter.
func (t *CommentThread) Create(ctx context.Context, body string) error {
	url := fmt.Sprintf("%s/repos/%s/issues/%d/comments", t.client.baseURL, t.repo, t.number)
	return t.client.client.Post(ctx, url, map[string]string{"body": body}, nil)
}

// Update implements report.Commenter.
func (t *CommentThread) Update(ctx context.Context, id, body string) error {
	url := fmt.Sprintf("%s/repos/%s/issues/comments/%s", t.client.baseURL, t.repo, id)
	return t.client.client.Patch(ctx, url, map[string]string{"body": body}, nil)
}
