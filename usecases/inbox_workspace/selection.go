package inbox_workspace

import "github.com/freelancehub/agency-inbox/models"

// SelectThread keeps previousId selected while it is still among threads, and falls back to the
// first thread otherwise. It returns an empty id when there is no thread.
func SelectThread(threads []models.Thread, previousId string) string {
	if len(threads) == 0 {
		return ""
	}
	if previousId != "" {
		for _, t := range threads {
			if t.Id == previousId {
				return previousId
			}
		}
	}
	return threads[0].Id
}
