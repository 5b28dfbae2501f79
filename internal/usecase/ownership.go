package usecase

import (
	"strings"

	"videotube/internal/entity"
	"videotube/pkg/apperror"
)

// requireOwner allows the call only when caller owns the resource.
func requireOwner(ownerID, callerID, resource string) error {
	if ownerID != callerID {
		return apperror.Forbidden("you are not the owner of this " + resource)
	}
	return nil
}

// requireVisible hides a draft from everyone but its owner. A draft is
// reported as missing so its existence does not leak.
func requireVisible(video *entity.Video, callerID string) error {
	if !video.IsPublished && video.OwnerID != callerID {
		return apperror.NotFound("video not found")
	}
	return nil
}

// dedupe lowercases ids and keeps the first occurrence of each. Ids are
// uuids, which postgres renders in lowercase.
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(id)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
