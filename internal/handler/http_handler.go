package handler

import (
    "encoding/json"
    stderrors "errors"
    "net/http"
    "sync"

    "github.com/go-chi/chi"
    "go.uber.org/zap"

    "staking_resolver/internal/domain"
    "staking_resolver/internal/errors"
    "staking_resolver/internal/port"
    "staking_resolver/pkg/ss58"
)

// maxBodyBytes bounds a posted block with its events.
const maxBodyBytes = 8 << 20

type resolveRequest struct {
    Account    string        `json:"account"`
    Block      *domain.Block `json:"block"`
    EventIndex int           `json:"eventIndex"`
}

type rewardDestinationResponse struct {
    Account           string                   `json:"account"`
    EventID           string                   `json:"eventId"`
    RewardDestination domain.RewardDestination `json:"rewardDestination"`
}

type controllerResponse struct {
    Account    string `json:"account"`
    EventID    string `json:"eventId"`
    Controller string `json:"controller"`
}

// Handler serializes resolve calls: the resolvers keep single-block state
// and expect events one at a time.
type Handler struct {
    mu          sync.Mutex
    rewards     port.RewardDestinationResolver
    controllers port.ControllerResolver
}

func NewHandler(rewards port.RewardDestinationResolver, controllers port.ControllerResolver) *Handler {
    return &Handler{rewards: rewards, controllers: controllers}
}

func (h *Handler) Register(r chi.Router) {
    r.Post("/resolve/reward-destination", h.resolveRewardDestination)
    r.Post("/resolve/controller", h.resolveController)
}

func (h *Handler) resolveRewardDestination(w http.ResponseWriter, r *http.Request) {
    req, event, ok := decodeRequest(w, r)
    if !ok {
        return
    }
    h.mu.Lock()
    dest, err := h.rewards.Resolve(r.Context(), req.Account, event)
    h.mu.Unlock()
    if err != nil {
        writeResolveError(w, "reward destination", err)
        return
    }
    writeJSON(w, rewardDestinationResponse{
        Account:           req.Account,
        EventID:           event.EventID(),
        RewardDestination: dest,
    })
}

func (h *Handler) resolveController(w http.ResponseWriter, r *http.Request) {
    req, event, ok := decodeRequest(w, r)
    if !ok {
        return
    }
    h.mu.Lock()
    ctrl, err := h.controllers.Resolve(r.Context(), req.Account, event)
    h.mu.Unlock()
    if err != nil {
        writeResolveError(w, "controller", err)
        return
    }
    writeJSON(w, controllerResponse{
        Account:    req.Account,
        EventID:    event.EventID(),
        Controller: ctrl,
    })
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (resolveRequest, domain.EventHandle, bool) {
    var req resolveRequest
    if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
        zap.L().Error("invalid resolve body", zap.Error(err))
        writeErrorJSON(w, http.StatusBadRequest, "invalid body")
        return req, domain.EventHandle{}, false
    }
    if !ss58.Valid(req.Account) {
        writeErrorJSON(w, errors.ErrInvalidAccount.StatusCode(), errors.ErrInvalidAccount.Error())
        return req, domain.EventHandle{}, false
    }
    event, err := domain.NewEventHandle(req.Block, req.EventIndex)
    if err != nil {
        zap.L().Error("invalid event handle", zap.Error(err))
        writeErrorJSON(w, errors.ErrInvalidEvent.StatusCode(), errors.ErrInvalidEvent.Error())
        return req, domain.EventHandle{}, false
    }
    return req, event, true
}

func writeResolveError(w http.ResponseWriter, what string, err error) {
    var he errors.HTTPError
    if stderrors.As(err, &he) {
        writeErrorJSON(w, he.StatusCode(), he.Error())
        return
    }
    zap.L().Error("unexpected "+what+" error", zap.Error(err))
    writeErrorJSON(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, v interface{}) {
    w.Header().Set("Content-Type", "application/json")
    if err := json.NewEncoder(w).Encode(v) ; err != nil {
        zap.L().Error("failed to write JSON response", zap.Error(err))
    }
}

func writeErrorJSON(w http.ResponseWriter, status int, msg string) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    if err := json.NewEncoder(w).Encode(struct {
        Error string `json:"error"`
    }{Error: msg}); err != nil {
        zap.L().Error("failed to write JSON error response", zap.Error(err))
    }
}
