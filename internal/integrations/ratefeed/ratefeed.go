package ratefeed

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/credit-coach/backend/internal/config"
	"github.com/sirupsen/logrus"
)

// Client fetches the central bank key rate over the bank's SOAP endpoint.
// The rate is used to prefill the loan playground with a realistic
// suggested lending rate.
type Client struct {
	url    string
	spread float64
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a rate feed client. spread is the lending margin
// added on top of the key rate.
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:    cfg.RateFeedURL,
		spread: cfg.LendingSpread,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// BaseRate returns the latest published key rate as an annual percentage.
func (c *Client) BaseRate() (float64, error) {
	from := time.Now().AddDate(0, 0, -14).Format("2006-01-02")
	to := time.Now().Format("2006-01-02")
	envelope := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<KeyRate xmlns="http://web.cbr.ru/">
					<fromDate>%s</fromDate>
					<ToDate>%s</ToDate>
				</KeyRate>
			</soap12:Body>
		</soap12:Envelope>`, from, to)

	req, err := http.NewRequest(http.MethodPost, c.url, bytes.NewBufferString(envelope))
	if err != nil {
		return 0, fmt.Errorf("failed to create rate feed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("rate feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("rate feed returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read rate feed response: %w", err)
	}

	rate, err := parseKeyRate(body)
	if err != nil {
		return 0, err
	}

	c.log.Debugf("Rate feed key rate: %.2f%%", rate)
	return rate, nil
}

// SuggestedLendingRate is the key rate plus the configured spread. Both
// rates are returned so the caller shows them without a second fetch.
func (c *Client) SuggestedLendingRate() (base, suggested float64, err error) {
	base, err = c.BaseRate()
	if err != nil {
		return 0, 0, err
	}
	suggested = base + c.spread
	c.log.Infof("Suggested lending rate: %.2f%% (base %.2f%% + spread %.2f%%)", suggested, base, c.spread)
	return base, suggested, nil
}

func parseKeyRate(raw []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return 0, fmt.Errorf("failed to parse rate feed XML: %w", err)
	}

	// The newest rate is the first KR entry of the diffgram
	entries := doc.FindElements("//diffgram/KeyRate/KR")
	if len(entries) == 0 {
		return 0, fmt.Errorf("no key rate entries in rate feed response")
	}
	rateElement := entries[0].FindElement("./Rate")
	if rateElement == nil {
		return 0, fmt.Errorf("rate element missing in rate feed response")
	}

	var rate float64
	if _, err := fmt.Sscanf(rateElement.Text(), "%f", &rate); err != nil {
		return 0, fmt.Errorf("failed to parse key rate %q: %w", rateElement.Text(), err)
	}
	return rate, nil
}
