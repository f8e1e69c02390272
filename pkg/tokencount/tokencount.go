// Package tokencount estimates prompt sizes for chat completion requests.
package tokencount

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
	"github.com/pkoukk/tiktoken-go"
)

const (
	fallbackEncoding = "cl100k_base"

	// Chat completion endpoints frame every message with a few tokens and
	// prime the reply with a few more.
	perMessageOverhead   = 3
	replyPrimingOverhead = 3
)

// Estimate returns the approximate number of prompt tokens the messages
// consume for the given model, including per-message framing overhead.
func Estimate(messages []*schema.Message, model string) (int, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return 0, fmt.Errorf("failed to load token encoding: %w", err)
		}
	}

	total := replyPrimingOverhead
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		total += perMessageOverhead
		total += len(enc.Encode(string(msg.Role), nil, nil))
		total += len(enc.Encode(msg.Content, nil, nil))
	}
	return total, nil
}
