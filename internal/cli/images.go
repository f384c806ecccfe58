package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ImageRecord is one element of `podman images --format json`.
// Only the names are used; podman emits the key as "Names", which json matches case-insensitively.
type ImageRecord struct {
	Names []string `json:"names"`
}

// DecodeImageList decodes the captured output of the list command.
func DecodeImageList(output string) ([]ImageRecord, error) {
	var records []ImageRecord
	if err := json.Unmarshal([]byte(output), &records); err != nil {
		return nil, wrapWithSentinelAndContext(ErrDecodeImagesFailed, err,
			fmt.Sprintf("failed to decode image list: %v", err),
			map[string]any{"bytes": len(output)})
	}
	return records, nil
}

// MatchingNames returns the names of every record with at least one name containing target,
// in list order.
func MatchingNames(records []ImageRecord, target string) [][]string {
	matched := lo.Filter(records, func(record ImageRecord, _ int) bool {
		return lo.SomeBy(record.Names, func(name string) bool {
			return strings.Contains(name, target)
		})
	})
	return lo.Map(matched, func(record ImageRecord, _ int) []string {
		return record.Names
	})
}
