package service

import "github.com/aussiebroadwan/healthmate/pkg/healthsdk"

// ToolService serves the static tool catalogue.
type ToolService struct {
	Tools []healthsdk.Tool
}

func (s *ToolService) List() []healthsdk.Tool {
	if s.Tools == nil {
		return healthsdk.DefaultTools
	}
	return s.Tools
}
