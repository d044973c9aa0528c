package demo

import (
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

// Message is the demo CRUD entity, matching the original service's shape.
type Message struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// MessageStore is an in-memory stand-in for the entity table. Real database
// internals are out of scope for this repo; the store only needs to make the
// CRUD surface behave.
type MessageStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]Message
}

func NewMessageStore() *MessageStore {
	return &MessageStore{nextID: 1, items: make(map[int64]Message)}
}

func (st *MessageStore) List() []Message {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]Message, 0, len(st.items))
	for _, m := range st.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (st *MessageStore) Create(content string) Message {
	st.mu.Lock()
	defer st.mu.Unlock()
	m := Message{ID: st.nextID, Content: content}
	st.items[m.ID] = m
	st.nextID++
	return m
}

func (st *MessageStore) Get(id int64) (Message, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	m, ok := st.items[id]
	return m, ok
}

func (st *MessageStore) Update(id int64, content string) (Message, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	m, ok := st.items[id]
	if !ok {
		return Message{}, false
	}
	m.Content = content
	st.items[id] = m
	return m, true
}

func (st *MessageStore) Delete(id int64) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.items[id]
	delete(st.items, id)
	return ok
}

func (st *MessageStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.items)
}

func (s *Server) handleListMessages(c *gin.Context) {
	c.JSON(http.StatusOK, s.messages.List())
}

func (s *Server) handleCreateMessage(c *gin.Context) {
	var body Message
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, s.messages.Create(body.Content))
}

func (s *Server) handleGetMessage(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}
	m, found := s.messages.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) handleUpdateMessage(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}
	var body Message
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, found := s.messages.Update(id, body.Content)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) handleDeleteMessage(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}
	if !s.messages.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDBInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"connected":           true,
		"connectionPoolClass": s.cfg.ConnectionPool,
		"recordCounts": gin.H{
			"Message": s.messages.Count(),
		},
	})
}

func messageID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return 0, false
	}
	return id, true
}
