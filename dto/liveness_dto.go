package dto

type LivenessStatusResponse struct {
	Status []LivenessItemStatusResponse `json:"status"`
}

type LivenessItemStatusResponse struct {
	Name   string `json:"name"`
	IsLive bool   `json:"is_live"`
}

func AdaptLivenessStatus(collaboratorErr error) LivenessStatusResponse {
	return LivenessStatusResponse{
		Status: []LivenessItemStatusResponse{
			{Name: "collaborator", IsLive: collaboratorErr == nil},
		},
	}
}
