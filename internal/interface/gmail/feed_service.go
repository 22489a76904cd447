package gmail

import (
	"context"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// FeedService pulls schedule feed emails from Gmail and stores them as raw
// tabular feeds for the import pipeline. The pipeline only ever sees the
// 2-D string shape; everything mail-specific ends here.
type FeedService struct {
	gmailService *gmail.Service
	feedRepo     repository.FeedRepository
	logger       logger.Logger
	pollInterval time.Duration
	subjectMatch string
}

// NewFeedService creates a new Gmail feed service
func NewFeedService(ctx context.Context, tokenSource oauth2.TokenSource, feedRepo repository.FeedRepository, logger logger.Logger, pollInterval time.Duration, subjectMatch string) (*FeedService, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &FeedService{
		gmailService: service,
		feedRepo:     feedRepo,
		logger:       logger,
		pollInterval: pollInterval,
		subjectMatch: subjectMatch,
	}, nil
}

// FetchFeeds fetches new schedule feed emails from Gmail
func (s *FeedService) FetchFeeds(ctx context.Context) error {
	lastFeed, _ := s.feedRepo.GetLastFeed(ctx)
	var fetchFrom time.Time
	var hasLastFeed bool

	if lastFeed != nil && !lastFeed.ReceivedAt.IsZero() {
		fetchFrom = lastFeed.ReceivedAt
		hasLastFeed = true
		s.logger.Info("Using last received feed time",
			"lastReceivedFeedTime", fetchFrom.Format("2006-01-02 15:04:05 UTC"))
	} else {
		// Default starting point
		fetchFrom = time.Now().UTC().AddDate(0, 0, -7)
		hasLastFeed = false
		s.logger.Info("No previous feeds, using default start date",
			"startDate", fetchFrom.Format("2006-01-02 15:04:05 UTC"))
	}

	queryDate := fetchFrom
	if hasLastFeed {
		// Go back 3 days to catch any emails we might have missed
		queryDate = fetchFrom.AddDate(0, 0, -3)
	}

	query := fmt.Sprintf("after:%s", queryDate.Format("2006/01/02"))
	s.logger.Info("Querying Gmail",
		"query", query,
		"actualCutoffTime", fetchFrom.Format("2006-01-02 15:04:05 UTC"))

	req := s.gmailService.Users.Messages.List("me").Q(query)
	resp, err := req.Do()
	if err != nil {
		s.logger.Error("Failed to list messages", "error", err)
		return err
	}

	if len(resp.Messages) == 0 {
		s.logger.Info("No new messages found")
		return nil
	}

	feedIDs := make([]string, len(resp.Messages))
	for i, msg := range resp.Messages {
		feedIDs[i] = msg.Id
	}

	existingFeeds, err := s.feedRepo.FindByFeedIDs(ctx, feedIDs)
	if err != nil {
		s.logger.Error("Failed to batch check existing feeds", "error", err)
		existingFeeds = make(map[string]*entity.Feed)
	}

	newFeedsCount := 0
	skippedOldCount := 0
	skippedExistingCount := 0

	for _, msg := range resp.Messages {
		// Skip if already in database
		if _, exists := existingFeeds[msg.Id]; exists {
			s.logger.Debug("Feed already exists in database", "feedID", msg.Id)
			skippedExistingCount++
			continue
		}

		fullMsg, err := s.gmailService.Users.Messages.Get("me", msg.Id).Do()
		if err != nil {
			s.logger.Error("Failed to get message", "feedID", msg.Id, "error", err)
			continue
		}

		messageTime := time.Unix(0, fullMsg.InternalDate*int64(time.Millisecond))

		if hasLastFeed && (messageTime.Before(fetchFrom) || messageTime.Equal(fetchFrom)) {
			s.logger.Debug("Message timestamp not after last received feed time",
				"messageID", msg.Id,
				"messageTime", messageTime.Format("2006-01-02 15:04:05 UTC"))
			skippedOldCount++
			continue
		}

		feed, err := s.convertToFeed(fullMsg)
		if err != nil {
			s.logger.Error("Failed to convert message", "feedID", msg.Id, "error", err)
			continue
		}

		// Apply subject filter
		if !s.FilterPattern(feed.Subject) {
			s.logger.Debug("Email doesn't match subject filter", "subject", feed.Subject)
			continue
		}

		if len(feed.Headers) == 0 {
			s.logger.Warn("No tabular data found in feed email",
				"feedID", feed.FeedID,
				"subject", feed.Subject)
			continue
		}

		s.logger.Info("Storing new feed",
			"subject", feed.Subject,
			"feedID", feed.FeedID,
			"rows", len(feed.Rows),
			"receivedAt", feed.ReceivedAt.Format("2006-01-02 15:04:05 UTC"))

		err = s.feedRepo.Save(ctx, feed)
		if err != nil {
			s.logger.Error("Failed to save feed", "feedID", msg.Id, "error", err)
			continue
		}

		newFeedsCount++
	}

	s.logger.Info("Feed fetch completed",
		"totalFromGmail", len(resp.Messages),
		"alreadyInDB", skippedExistingCount,
		"skippedOld", skippedOldCount,
		"newFeeds", newFeedsCount)

	return nil
}

// StartPolling starts polling Gmail for new feed emails
func (s *FeedService) StartPolling(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Gmail polling stopped")
			return
		case <-ticker.C:
			s.logger.Info("Polling Gmail for new feeds")
			if err := s.FetchFeeds(ctx); err != nil {
				s.logger.Error("Error polling Gmail", "error", err)
			}
		}
	}
}

// FilterPattern reports whether a subject identifies a schedule feed email
func (s *FeedService) FilterPattern(subject string) bool {
	return strings.Contains(strings.ToLower(subject), strings.ToLower(s.subjectMatch))
}

// convertToFeed converts a Gmail message to a raw feed entity. CSV
// attachments win over HTML body tables when both are present.
func (s *FeedService) convertToFeed(msg *gmail.Message) (*entity.Feed, error) {
	feed := &entity.Feed{
		FeedID: msg.Id,
	}

	// Extract header information
	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "From":
			feed.From = header.Value
		case "Subject":
			feed.Subject = header.Value
		}
	}

	var htmlBody string
	var csvData []byte

	if msg.Payload.Body != nil && msg.Payload.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(msg.Payload.Body.Data)
		if err != nil {
			return nil, err
		}
		htmlBody = string(data)
	}

	// Handle multipart messages
	for _, part := range msg.Payload.Parts {
		if part.Body == nil {
			continue
		}
		if part.MimeType == "text/html" {
			data, err := base64.URLEncoding.DecodeString(part.Body.Data)
			if err != nil {
				continue
			}
			htmlBody = string(data)
		} else if part.Filename != "" && strings.HasSuffix(strings.ToLower(part.Filename), ".csv") {
			data, err := base64.URLEncoding.DecodeString(part.Body.Data)
			if err != nil {
				continue
			}
			csvData = data
		}
	}

	if len(csvData) > 0 {
		headers, rows, err := parseCSVTable(csvData)
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV attachment: %w", err)
		}
		feed.SourceKind = "attachment"
		feed.Headers = headers
		feed.Rows = rows
	} else if htmlBody != "" {
		headers, rows := extractHTMLTable(htmlBody)
		feed.SourceKind = "body"
		feed.Headers = headers
		feed.Rows = rows
	}

	feed.ReceivedAt = time.Unix(0, msg.InternalDate*int64(time.Millisecond))
	feed.ProcessStatus = entity.StatusPending

	return feed, nil
}

// parseCSVTable splits CSV bytes into a header row and data rows
func parseCSVTable(data []byte) ([]string, [][]string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1 // feeds are ragged more often than not
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

var (
	tableRegex = regexp.MustCompile(`(?s)<table[^>]*>.*?</table>`)
	rowRegex   = regexp.MustCompile(`(?s)<tr[^>]*>(.*?)</tr>`)
	cellRegex  = regexp.MustCompile(`(?s)<t[dh][^>]*>(.*?)</t[dh]>`)
	tagRegex   = regexp.MustCompile(`<[^>]*>`)
)

// extractHTMLTable pulls the first table out of an HTML body as raw rows.
// First row is the header row.
func extractHTMLTable(body string) ([]string, [][]string) {
	tables := tableRegex.FindAllString(body, -1)
	if len(tables) == 0 {
		return nil, nil
	}

	var headers []string
	var rows [][]string

	trs := rowRegex.FindAllStringSubmatch(tables[0], -1)
	for _, tr := range trs {
		if len(tr) < 2 {
			continue
		}
		cells := cellRegex.FindAllStringSubmatch(tr[1], -1)
		if len(cells) == 0 {
			continue
		}

		var cleanCells []string
		for _, cell := range cells {
			cleanCells = append(cleanCells, cleanHTMLText(cell[1]))
		}

		if headers == nil {
			headers = cleanCells
			continue
		}
		rows = append(rows, cleanCells)
	}

	return headers, rows
}

// cleanHTMLText removes HTML tags and cleans up text
func cleanHTMLText(text string) string {
	cleaned := tagRegex.ReplaceAllString(text, "")

	// Replace HTML entities
	cleaned = strings.ReplaceAll(cleaned, "&nbsp;", " ")
	cleaned = strings.ReplaceAll(cleaned, "&amp;", "&")
	cleaned = strings.ReplaceAll(cleaned, "&lt;", "<")
	cleaned = strings.ReplaceAll(cleaned, "&gt;", ">")
	cleaned = strings.ReplaceAll(cleaned, "&#39;", "'")
	cleaned = strings.ReplaceAll(cleaned, "&quot;", "\"")

	return strings.TrimSpace(cleaned)
}
