package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"timekeeper.app/timekeeper/attendance/app"
	"timekeeper.app/timekeeper/attendance/report"
	"timekeeper.app/timekeeper/config"
	"timekeeper.app/timekeeper/infrastructure/communication"
	"timekeeper.app/timekeeper/infrastructure/filesystem"
	"timekeeper.app/timekeeper/lambdas/common"
)

func GenerateReport(ctx context.Context, cfg config.Config, event ReportEvent) (*ReportResult, error) {
	dateRange, err := ResolveRange(event, time.Now(), cfg.Location)
	if err != nil {
		return nil, err
	}

	a, err := app.Open(ctx, cfg, nil, false)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	data, err := report.Generate(ctx, a.Report(), dateRange, cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	result := &ReportResult{
		Key:    path.Join("reports", report.FileName(dateRange)),
		Size:   len(data),
		DryRun: event.DryRun || cfg.ReportBucket == "",
	}
	if result.DryRun {
		fmt.Printf("[INFO] Dry run, %s (%d bytes) not uploaded\n", result.Key, result.Size)
		return result, nil
	}

	bucket, err := filesystem.NewBucket(ctx, cfg.ReportBucket)
	if err != nil {
		return nil, err
	}
	if err := bucket.WriteFile(ctx, result.Key, report.ContentType, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}
	result.Bucket = bucket.Name()
	fmt.Printf("[INFO] Uploaded s3://%s/%s\n", result.Bucket, result.Key)

	if cfg.SlackBotToken != "" {
		slack := communication.NewSlack(cfg.SlackBotToken, communication.SlackOption{
			InfoChannelID:  cfg.SlackInfoChannel,
			ErrorChannelID: cfg.SlackErrorChannel,
		})
		msg := fmt.Sprintf("Attendance report for %s to %s is ready: s3://%s/%s",
			dateRange.Start.Format(time.DateOnly), dateRange.End.Format(time.DateOnly), result.Bucket, result.Key)
		if err := slack.Info(ctx, msg); err != nil {
			fmt.Printf("[WARN] failed to post report to slack: %v\n", err)
		}
	}
	return result, nil
}

func HandleRequest(ctx context.Context, event any) (any, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var reportEvent ReportEvent
	bedrockEvent, err := common.DecodeEvent(event, &reportEvent)
	if err != nil {
		return nil, err
	}
	if bedrockEvent != nil {
		fmt.Printf("[INFO] Identified as Bedrock Event: %s\n", bedrockEvent.ActionGroup)
		reportEvent = FromBedrock(bedrockEvent)
	}

	result, err := GenerateReport(ctx, cfg, reportEvent)
	if err != nil {
		return nil, err
	}

	if bedrockEvent != nil {
		return common.NewBedrockResponse(bedrockEvent, result), nil
	}
	return result, nil
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	event := ReportEvent{Period: PeriodWeek, DryRun: true}
	if len(os.Args) > 2 {
		event = ReportEvent{StartDate: os.Args[1], EndDate: os.Args[2], DryRun: true}
	}
	result, err := GenerateReport(context.Background(), cfg, event)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	resJson, _ := json.MarshalIndent(result, "", "  ")
	fmt.Printf("[SUCCESS] Results:\n%s\n", string(resJson))
}
