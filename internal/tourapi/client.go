package tourapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lovetrip/crawler/internal/log"
	"github.com/lovetrip/crawler/internal/util"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const defaultNumOfRows = 100

// Client wraps the government Tour API. All requests pass through a courtesy
// rate limiter so the upstream sees at most one call per configured delay.
type Client struct {
	baseUrl    string
	serviceKey string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxPages   int
	logger     log.Logger
}

func NewClient(config *util.Config, logger log.Logger) *Client {
	delay := time.Duration(config.DelayMs.Int(1000)) * time.Millisecond

	return &Client{
		baseUrl:    strings.TrimRight(config.TourApiBaseUrl.Value, "/"),
		serviceKey: config.TourApiKey.Value,
		httpClient: &http.Client{
			Timeout: time.Duration(config.RequestTimeoutS.Int(30)) * time.Second,
		},
		limiter:  rate.NewLimiter(rate.Every(delay), 1),
		maxPages: config.MaxPages.Int(200),
		logger:   logger,
	}
}

type ListParams struct {
	AreaCode      int
	SigunguCode   int
	ContentTypeId int
	NumOfRows     int
	PageNo        int
}

// GetAreaBasedList fetches one page of listings. Items failing shape
// validation are skipped with a warning; a non-"0000" result code comes
// back as *APIError.
func (c *Client) GetAreaBasedList(ctx context.Context, params ListParams) ([]Item, error) {
	numOfRows := params.NumOfRows
	if numOfRows <= 0 {
		numOfRows = defaultNumOfRows
	}
	pageNo := params.PageNo
	if pageNo <= 0 {
		pageNo = 1
	}

	// the service key comes pre-encoded from data.go.kr, so the query is
	// assembled by hand instead of url.Values to avoid double-encoding it
	queryParts := []string{
		"serviceKey=" + c.serviceKey,
		"numOfRows=" + strconv.Itoa(numOfRows),
		"pageNo=" + strconv.Itoa(pageNo),
		"MobileOS=ETC",
		"MobileApp=LoveTrip",
		"_type=json",
	}
	if params.AreaCode > 0 {
		queryParts = append(queryParts, "areaCode="+strconv.Itoa(params.AreaCode))
	}
	if params.SigunguCode > 0 {
		queryParts = append(queryParts, "sigunguCode="+strconv.Itoa(params.SigunguCode))
	}
	if params.ContentTypeId > 0 {
		queryParts = append(queryParts, "contentTypeId="+strconv.Itoa(params.ContentTypeId))
	}

	url := c.baseUrl + "/areaBasedList1?" + strings.Join(queryParts, "&")

	env, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(env.Response.Body.Items.Item))
	for _, item := range env.Response.Body.Items.Item {
		if err := item.Validate(); err != nil {
			c.logger.WithField("ContentId", item.ContentID).Warnf("skipping malformed item: %v", err)
			continue
		}
		items = append(items, item)
	}

	return items, nil
}

// GetDetailInfo fetches the detail record for a single listing,
// or nil when the upstream has none.
func (c *Client) GetDetailInfo(ctx context.Context, contentId string, contentTypeId int) (*Item, error) {
	queryParts := []string{
		"serviceKey=" + c.serviceKey,
		"contentId=" + contentId,
		"contentTypeId=" + strconv.Itoa(contentTypeId),
		"MobileOS=ETC",
		"MobileApp=LoveTrip",
		"_type=json",
	}

	url := c.baseUrl + "/detailInfo1?" + strings.Join(queryParts, "&")

	env, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if len(env.Response.Body.Items.Item) == 0 {
		return nil, nil
	}

	item := env.Response.Body.Items.Item[0]
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("malformed detail item: %w", err)
	}

	return &item, nil
}

type PageParams struct {
	AreaCode      int
	SigunguCode   int
	ContentTypeId int
	MaxPages      int
}

// GetAllPages walks pages from 1 until an empty page or the page cap.
// A page-level error stops the walk and returns what was accumulated;
// best effort is intentional and the early stop is logged.
func (c *Client) GetAllPages(ctx context.Context, params PageParams) []Item {
	maxPages := params.MaxPages
	if maxPages <= 0 {
		maxPages = c.maxPages
	}

	var allItems []Item
	for pageNo := 1; pageNo <= maxPages; pageNo++ {
		items, err := c.GetAreaBasedList(ctx, ListParams{
			AreaCode:      params.AreaCode,
			SigunguCode:   params.SigunguCode,
			ContentTypeId: params.ContentTypeId,
			NumOfRows:     defaultNumOfRows,
			PageNo:        pageNo,
		})
		if err != nil {
			c.logger.WithField("PageNo", pageNo).Warnf("stopping pagination early: %v", err)
			break
		}

		if len(items) == 0 {
			break
		}

		allItems = append(allItems, items...)
		c.logger.WithFields(logrus.Fields{
			"PageNo":    pageNo,
			"PageItems": len(items),
			"Total":     len(allItems),
		}).Debug("fetched page")
	}

	return allItems
}

func (c *Client) fetch(ctx context.Context, url string) (*envelope, error) {
	// throttle every request, success or failure
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return nil, fmt.Errorf("invalid json response (http %d): %s", resp.StatusCode, preview)
	}

	if code := env.Response.Header.ResultCode; code != "" && code != "0000" {
		return nil, NewAPIError(code, env.Response.Header.ResultMsg)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected http status %d", resp.StatusCode)
	}

	return &env, nil
}
