package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Aparna-Vijayakumar/match-lstm/snli"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

const defaultNeighbors = 10

/*
Server is a read-only diagnostics server over a built corpus. Examples and
embeddings never change after materialization, so handlers need no locking.
*/
type Server struct {
	corpus *snli.Corpus
}

/*
NewServer creates a new diagnostics server
*/
func NewServer(corpus *snli.Corpus) *Server {
	return &Server{
		corpus: corpus,
	}
}

/*
Start starts the HTTP server
*/
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stats", s.HandleStats)
	mux.HandleFunc("/api/embeddings/", s.HandleEmbedding)
	mux.HandleFunc("/api/neighbors/", s.HandleNeighbors)
	mux.HandleFunc("/api/ws", s.handleWebSocket)
	return http.ListenAndServe(addr, mux)
}

/*
HandleStats reports vocabulary size, embedding coverage and partition sizes
*/
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats := map[string]interface{}{
		"vocab_size":    s.corpus.Vocab.Size(),
		"embeddings":    s.corpus.Embeddings.Len(),
		"embedding_dim": s.corpus.Embeddings.Dim,
		"train":         len(s.corpus.Train),
		"valid":         len(s.corpus.Valid),
		"test":          len(s.corpus.Test),
	}
	json.NewEncoder(w).Encode(stats)
}

/*
HandleEmbedding returns the stored vector for one word
*/
func (s *Server) HandleEmbedding(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	word := strings.TrimPrefix(r.URL.Path, "/api/embeddings/")
	vector, err := s.corpus.Embeddings.Vector(word)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"word":   word,
		"vector": vector,
	})
}

/*
HandleNeighbors returns the k nearest words by cosine similarity
*/
func (s *Server) HandleNeighbors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	word := strings.TrimPrefix(r.URL.Path, "/api/neighbors/")
	k := defaultNeighbors
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		parsed, err := strconv.Atoi(kStr)
		if err != nil || parsed < 1 {
			http.Error(w, "Invalid k parameter", http.StatusBadRequest)
			return
		}
		k = parsed
	}

	neighbors, err := s.corpus.Embeddings.Neighbors(word, k)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(map[string]interface{}{
		"word":      word,
		"neighbors": neighbors,
	})
}

/*
handleWebSocket handles WebSocket connections
*/
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "Failed to upgrade connection", http.StatusInternalServerError)
		return
	}
	defer conn.Close()

	// Set read deadline
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Handle WebSocket messages
	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var request map[string]interface{}
		if err := json.Unmarshal(p, &request); err != nil {
			conn.WriteMessage(messageType, []byte(`{"error": "Invalid JSON"}`))
			continue
		}

		switch request["type"] {
		case "lookup":
			s.handleLookup(conn, messageType, request)
		case "neighbors":
			s.handleNeighborsMessage(conn, messageType, request)
		default:
			conn.WriteMessage(messageType, []byte(`{"error": "Unknown message type"}`))
		}
	}
}

func (s *Server) handleLookup(conn *websocket.Conn, messageType int, request map[string]interface{}) {
	word, _ := request["word"].(string)

	vector, err := s.corpus.Embeddings.Vector(word)
	if err != nil {
		s.writeError(conn, messageType, err)
		return
	}

	response, _ := json.Marshal(map[string]interface{}{
		"word":   word,
		"vector": vector,
	})
	conn.WriteMessage(messageType, response)
}

func (s *Server) handleNeighborsMessage(conn *websocket.Conn, messageType int, request map[string]interface{}) {
	word, _ := request["word"].(string)

	k := defaultNeighbors
	if kVal, ok := request["k"].(float64); ok && kVal >= 1 {
		k = int(kVal)
	}

	neighbors, err := s.corpus.Embeddings.Neighbors(word, k)
	if err != nil {
		s.writeError(conn, messageType, err)
		return
	}

	response, _ := json.Marshal(map[string]interface{}{
		"word":      word,
		"neighbors": neighbors,
	})
	conn.WriteMessage(messageType, response)
}

func (s *Server) writeError(conn *websocket.Conn, messageType int, err error) {
	response, _ := json.Marshal(map[string]string{"error": err.Error()})
	conn.WriteMessage(messageType, response)
}
