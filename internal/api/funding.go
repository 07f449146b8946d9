package api

import (
	"net/http"
	"net/url"

	"github.com/launchforge/phaseline/internal/model"
)

// SubmitFundingRequest files a funding ask against a phase or task
func (c *Client) SubmitFundingRequest(req model.FundingRequest) (*model.FundingRequest, error) {
	var created model.FundingRequest
	err := c.do(http.MethodPost, "/api/v1/funding-requests", req, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ListFundingRequests returns the funding requests for an idea
func (c *Client) ListFundingRequests(ideaID string) ([]model.FundingRequest, error) {
	var reqs []model.FundingRequest
	path := "/api/v1/funding-requests?idea_id=" + url.QueryEscape(ideaID)
	if err := c.do(http.MethodGet, path, nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}
