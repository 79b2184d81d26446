package fin

import (
	"VyaparDash/internal/serviceiface"
	"VyaparDash/internal/store"
)

type FinService struct {
	config map[string]interface{}
	store  store.Store
}

func NewFinService(cfg map[string]interface{}, st store.Store) serviceiface.Service {
	return &FinService{config: cfg, store: st}
}

func (s *FinService) Name() string {
	return "fin"
}

func (s *FinService) Start() error {
	port := 0
	if s.config != nil {
		switch v := s.config["port"].(type) {
		case int:
			port = v
		case float64:
			port = int(v)
		}
	}
	go StartFinService(s.store, port)
	return nil
}

func (s *FinService) Stop() error {
	// Implement stop logic if needed
	return nil
}
