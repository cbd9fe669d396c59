package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"timekeeper.app/timekeeper/attendance/app"
	"timekeeper.app/timekeeper/config"
	"timekeeper.app/timekeeper/infrastructure/communication"
	"timekeeper.app/timekeeper/infrastructure/filesystem"
	"timekeeper.app/timekeeper/lambdas/timeentry-import/helper"
)

func importObject(ctx context.Context, a *app.App, cfg config.Config, bucketName, key string) (helper.ImportResult, error) {
	bucket, err := filesystem.NewBucket(ctx, bucketName)
	if err != nil {
		return helper.ImportResult{}, err
	}

	fmt.Printf("[INFO] Fetching s3://%s/%s\n", bucketName, key)
	var buf bytes.Buffer
	if err := bucket.ReadFile(ctx, key, &buf); err != nil {
		return helper.ImportResult{}, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return helper.Import(ctx, a.TimeEntries, &buf, cfg.Location, time.Now())
}

// postToSlack sends message through post. A failed post is logged and reported as false.
func postToSlack(ctx context.Context, post func(context.Context, string) error, message string) bool {
	if err := post(ctx, message); err != nil {
		fmt.Printf("[WARN] failed to post to slack: %v\n", err)
		return false
	}
	return true
}

// Lambda handler function
func HandleRequest(ctx context.Context, event events.S3Event) (map[string]helper.ImportResult, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a, err := app.Open(ctx, cfg, nil, false)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	var slack *communication.Slack
	if cfg.SlackBotToken != "" {
		slack = communication.NewSlack(cfg.SlackBotToken, communication.SlackOption{
			InfoChannelID:  cfg.SlackInfoChannel,
			ErrorChannelID: cfg.SlackErrorChannel,
		})
	}

	results := make(map[string]helper.ImportResult)
	for _, record := range event.Records {
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			key = record.S3.Object.Key
		}

		result, err := importObject(ctx, a, cfg, record.S3.Bucket.Name, key)
		if err != nil {
			fmt.Printf("[ERROR] import of %s failed: %v\n", key, err)
			if slack != nil {
				postToSlack(ctx, slack.Error, fmt.Sprintf("time entry import of %s failed: %v", key, err))
			}
			continue
		}

		fmt.Printf("[INFO] %s: %s\n", key, result)
		if slack != nil {
			postToSlack(ctx, slack.Info, fmt.Sprintf("time entry import of %s: %s", key, result))
		}
		results[key] = result
	}

	return results, nil
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
		return
	}

	if len(os.Args) < 3 {
		fmt.Printf("usage: timeentry-import <bucket> <key>\n")
		os.Exit(2)
	}
	results, err := HandleRequest(context.Background(), events.S3Event{Records: []events.S3EventRecord{{
		S3: events.S3Entity{
			Bucket: events.S3Bucket{Name: os.Args[1]},
			Object: events.S3Object{Key: os.Args[2]},
		},
	}}})
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		os.Exit(1)
	}
	resJson, _ := json.MarshalIndent(results, "", "  ")
	fmt.Printf("[SUCCESS] Results:\n%s\n", string(resJson))
}
