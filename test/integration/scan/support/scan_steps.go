package support

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
	"github.com/disintegration/imaging"

	"github.com/wenyin0054/fundora-app-sub001/internal/testutil"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// RegisterScanSteps wires the scan pipeline step definitions.
func (tc *TestContext) RegisterScanSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a photographed receipt$`, tc.aPhotographedReceipt)
	sc.Step(`^the on-device recognizer reads:$`, tc.theRecognizerReads)
	sc.Step(`^the on-device recognizer fails with "([^"]*)"$`, tc.theRecognizerFails)
	sc.Step(`^the cloud service responds with:$`, tc.theCloudRespondsWith)
	sc.Step(`^the cloud service is unavailable$`, tc.theCloudIsUnavailable)
	sc.Step(`^the cloud fallback is disabled$`, tc.theCloudIsDisabled)
	sc.Step(`^I scan the receipt$`, tc.iScanTheReceipt)
	sc.Step(`^the scan source should be "(local|cloud)"$`, tc.theScanSourceShouldBe)
	sc.Step(`^the merchant should be "([^"]*)"$`, tc.theMerchantShouldBe)
	sc.Step(`^the total should be "([^"]*)"$`, tc.theTotalShouldBe)
	sc.Step(`^the merchant should be empty$`, tc.theMerchantShouldBeEmpty)
	sc.Step(`^the cloud service should have been called (\d+) times?$`, tc.theCloudShouldHaveBeenCalled)
	sc.Step(`^the scan should still succeed$`, tc.theScanShouldSucceed)
}

func (tc *TestContext) aPhotographedReceipt() error {
	dir, err := os.MkdirTemp("", "scan-bdd-input-*")
	if err != nil {
		return err
	}
	tc.tempDirs = append(tc.tempDirs, dir)

	img := testutil.GenerateReceiptImage(testutil.ReceiptSize, testutil.SampleReceiptLines())
	path := filepath.Join(dir, "receipt.jpg")
	if err := imaging.Save(img, path); err != nil {
		return err
	}
	tc.imagePath = path
	return nil
}

func (tc *TestContext) theRecognizerReads(doc *godog.DocString) error {
	tc.recognizer.text = strings.TrimSpace(doc.Content)
	tc.recognizer.err = nil
	return nil
}

func (tc *TestContext) theRecognizerFails(reason string) error {
	tc.recognizer.err = errors.New(reason)
	return nil
}

func (tc *TestContext) theCloudRespondsWith(doc *godog.DocString) error {
	tc.cloudText = strings.TrimSpace(doc.Content)
	tc.cloudDown = false
	return nil
}

func (tc *TestContext) theCloudIsUnavailable() error {
	tc.cloudDown = true
	return nil
}

func (tc *TestContext) theCloudIsDisabled() error {
	tc.cloudEnabled = false
	return nil
}

func (tc *TestContext) iScanTheReceipt() error {
	if tc.imagePath == "" {
		return errors.New("no receipt image prepared")
	}
	p, err := tc.buildPipeline()
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	outcome, err := p.ProcessReceipt(context.Background(), tc.imagePath)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	tc.outcome = outcome
	return nil
}

func (tc *TestContext) theScanSourceShouldBe(source string) error {
	if tc.outcome == nil {
		return errors.New("no scan outcome")
	}
	if string(tc.outcome.Source) != source {
		return fmt.Errorf("expected source %q, got %q", source, tc.outcome.Source)
	}
	return nil
}

func (tc *TestContext) theMerchantShouldBe(merchant string) error {
	if tc.outcome == nil {
		return errors.New("no scan outcome")
	}
	if tc.outcome.MerchantName != merchant {
		return fmt.Errorf("expected merchant %q, got %q", merchant, tc.outcome.MerchantName)
	}
	return nil
}

func (tc *TestContext) theMerchantShouldBeEmpty() error {
	if tc.outcome == nil {
		return errors.New("no scan outcome")
	}
	if tc.outcome.MerchantName != "" {
		return fmt.Errorf("expected empty merchant, got %q", tc.outcome.MerchantName)
	}
	return nil
}

func (tc *TestContext) theTotalShouldBe(total string) error {
	if tc.outcome == nil {
		return errors.New("no scan outcome")
	}
	if tc.outcome.TotalAmount != total {
		return fmt.Errorf("expected total %q, got %q", total, tc.outcome.TotalAmount)
	}
	return nil
}

func (tc *TestContext) theCloudShouldHaveBeenCalled(n int) error {
	if got := tc.cloudCalls.Load(); got != int64(n) {
		return fmt.Errorf("expected %d cloud calls, got %d", n, got)
	}
	return nil
}

func (tc *TestContext) theScanShouldSucceed() error {
	if tc.outcome == nil {
		return errors.New("no scan outcome")
	}
	if !tc.outcome.Success {
		return errors.New("scan outcome not successful")
	}
	return nil
}
