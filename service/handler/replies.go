package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openrelay/service-filerelay/service/business"
	"github.com/openrelay/service-filerelay/service/platform"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/openrelay/service-filerelay/service/types"
)

const (
	replyUploadDenied    = "You do not have permission to upload files."
	replyBroadcastDenied = "You do not have permission to broadcast messages."
	replyStatsDenied     = "You do not have permission to view stats."
	replyNotFound        = "File not found."
	replyGenericFailure  = "Something went wrong, please try again later."
	replyEmptyBroadcast  = "Usage: /broadcast <message>"
	replyRetrieveUsage   = "Usage: /retrieve <file key>"

	replyHelp = "Commands:\n" +
		"/start - register with the bot\n" +
		"/help - this message\n" +
		"/retrieve <file key> - fetch an archived file\n" +
		"/stats - totals (admins)\n" +
		"/broadcast <message> - message all users (admins)\n" +
		"Admins can also send documents directly to archive them."
)

func greetingText(firstName string) string {
	if firstName == "" {
		return "Hello! Welcome to the bot."
	}
	return fmt.Sprintf("Hello %s! Welcome to the bot.", firstName)
}

func statsText(totals *business.Totals) string {
	return fmt.Sprintf("Total Users: %d\nTotal Files Uploaded: %d", totals.Users, totals.Files)
}

// joinPromptText lists every required channel with its verdict so the
// user knows exactly what remains to join.
func joinPromptText(verdicts []types.ChannelVerdict) string {
	var sb strings.Builder
	sb.WriteString("You need to join the following channel(s) before this file can be sent:\n")
	for _, verdict := range verdicts {
		if verdict.Satisfied() {
			sb.WriteString(fmt.Sprintf("\n✅ %s", verdict.Requirement.Title))
		} else {
			sb.WriteString(fmt.Sprintf("\n❌ %s", verdict.Requirement.Title))
		}
	}
	sb.WriteString("\n\nOnce you have joined, press Try again.")
	return sb.String()
}

// joinPromptButtons renders one join-link row per unmet channel plus a
// retry row. The retry payload carries the file key itself: the retry
// is a brand new request and must not rely on conversation state.
func joinPromptButtons(verdicts []types.ChannelVerdict, key types.FileKey) [][]platform.Button {
	rows := make([][]platform.Button, 0, len(verdicts)+1)
	for _, verdict := range verdicts {
		if verdict.Satisfied() || verdict.Requirement.JoinURL == "" {
			continue
		}
		rows = append(rows, []platform.Button{{
			Text: fmt.Sprintf("Join %s", verdict.Requirement.Title),
			URL:  verdict.Requirement.JoinURL,
		}})
	}
	rows = append(rows, []platform.Button{{
		Text: "Try again",
		Data: retryCallbackPrefix + string(key),
	}})
	return rows
}

func uploadSummaryText(summary *business.UploadSummary) string {
	if len(summary.Outcomes) == 1 {
		outcome := summary.Outcomes[0]
		if outcome.Err == nil {
			return fmt.Sprintf("File uploaded successfully! Here's the link: %s", outcome.Link)
		}
		return fmt.Sprintf("Upload failed: %s", outcomeReason(outcome))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Batch upload: %d succeeded, %d failed.\n", summary.Succeeded(), summary.Failed()))
	for _, outcome := range summary.Outcomes {
		if outcome.Err == nil {
			sb.WriteString(fmt.Sprintf("\n✅ %s — %s", outcome.Name, outcome.Link))
		} else {
			sb.WriteString(fmt.Sprintf("\n❌ %s — %s", outcome.Name, outcomeReason(outcome)))
		}
	}
	return sb.String()
}

func outcomeReason(outcome business.ItemOutcome) string {
	switch {
	case outcome.Err == nil:
		return ""
	case errors.Is(outcome.Err, repository.ErrDuplicateKey):
		return "already registered"
	default:
		return "could not archive the file"
	}
}

func grantedCaption(record *types.FileRecord, link string) string {
	if link == "" {
		return string(record.Name)
	}
	return fmt.Sprintf("%s\n%s", record.Name, link)
}
