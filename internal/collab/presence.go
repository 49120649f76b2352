package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// PresenceManager tracks where each collaborator is on the timeline.
type PresenceManager struct {
	mu        sync.RWMutex
	presences map[string]*PresencePayload // userID -> presence
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		presences: make(map[string]*PresencePayload),
	}
}

func (pm *PresenceManager) Update(userID string, p *PresencePayload) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.presences[userID] = p
}

func (pm *PresenceManager) Remove(userID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.presences, userID)
}

// DropSegment removes a deleted segment from every collaborator's
// selection, so late joiners never see a selection pointing at a
// segment that no longer exists.
func (pm *PresenceManager) DropSegment(segmentID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for _, p := range pm.presences {
		for i, id := range p.Selection {
			if id == segmentID {
				p.Selection = append(p.Selection[:i], p.Selection[i+1:]...)
				break
			}
		}
	}
}

func (pm *PresenceManager) GetAll() map[string]*PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]*PresencePayload, len(pm.presences))
	for k, v := range pm.presences {
		result[k] = v
	}
	return result
}

func (pm *PresenceManager) StateMessage() *Message {
	all := pm.GetAll()
	payload, err := json.Marshal(PresenceStatePayload{Presences: all})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypePresenceState,
		Payload: payload,
	}
}
