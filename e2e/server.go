// Package e2e exercises the full client stack against an in-process
// stand-in for the remote room service. The stub speaks the same
// named-event protocol over websockets: host_info on accept, rooms with
// capacities and PINs, and message fan-out that never relays a frame
// back to its sender.
package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"pinchat/domain"
	"pinchat/domain/event"
)

// StubOptions tunes the scripted behavior of the room service.
type StubOptions struct {
	// Host reported in host_info.
	Host domain.HostInfo

	// RejectMessage, when set, rejects every connection with a
	// connection_error instead of host_info.
	RejectMessage string

	// NextPIN is assigned to the next created room.
	NextPIN string
}

type stubClient struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex

	room string
}

func (c *stubClient) send(name string, payload any) {
	data, err := event.Encode(name, payload)
	if err != nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.conn.WriteMessage(websocket.TextMessage, data)
}

type stubRoom struct {
	pin      string
	capacity int
	members  []*stubClient
}

// RoomService is the scripted coordination service.
type RoomService struct {
	srv  *httptest.Server
	opts StubOptions

	mu      sync.Mutex
	clients map[*stubClient]struct{}
	rooms   map[string]*stubRoom
	nextSeq int
}

func StartRoomService(opts StubOptions) *RoomService {
	if opts.Host == (domain.HostInfo{}) {
		opts.Host = domain.HostInfo{Host: "stub", IP: "127.0.0.1"}
	}
	s := &RoomService{
		opts:    opts,
		clients: make(map[*stubClient]struct{}),
		rooms:   make(map[string]*stubRoom),
	}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the websocket address clients should dial.
func (s *RoomService) URL() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http")
}

func (s *RoomService) Close() {
	s.srv.Close()
}

// AddFullRoom registers a room that already reached its capacity, so
// every join attempt fails.
func (s *RoomService) AddFullRoom(pin string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[pin] = &stubRoom{pin: pin, capacity: 0}
}

// DisconnectAll pushes a connection_error to every live client, the way
// the real service announces a dropped session.
func (s *RoomService) DisconnectAll(message string) {
	s.mu.Lock()
	clients := make([]*stubClient, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.send(event.NameConnectionError, map[string]string{"message": message})
	}
}

var stubUpgrader = websocket.Upgrader{}

func (s *RoomService) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := stubUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &stubClient{id: uuid.New().String(), conn: conn}
	s.mu.Lock()
	s.clients[client] = struct{}{}
	s.mu.Unlock()
	defer s.dropClient(client)

	if s.opts.RejectMessage != "" {
		client.send(event.NameConnectionError, map[string]string{"message": s.opts.RejectMessage})
		return
	}
	client.send(event.NameHostInfo, s.opts.Host)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var env event.Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		s.dispatch(client, env)
	}
}

func (s *RoomService) dispatch(client *stubClient, env event.Envelope) {
	switch env.Event {
	case event.NameCreateRoom:
		var capacity string
		_ = json.Unmarshal(env.Payload, &capacity)
		s.createRoom(client, capacity)

	case event.NameJoinRoom:
		var pin string
		_ = json.Unmarshal(env.Payload, &pin)
		s.joinRoom(client, pin)

	case event.NameSendMessage:
		var msg event.ChatPayload
		_ = json.Unmarshal(env.Payload, &msg)
		s.relay(client, msg)
	}
}

func (s *RoomService) createRoom(client *stubClient, capacity string) {
	n, err := strconv.Atoi(capacity)
	if err != nil || n <= 0 {
		client.send(event.NameCreateError, map[string]string{"message": "capacidad no permitida"})
		return
	}

	s.mu.Lock()
	pin := s.opts.NextPIN
	if pin == "" {
		s.nextSeq++
		pin = fmt.Sprintf("%04d", 1000+s.nextSeq)
	}
	s.rooms[pin] = &stubRoom{pin: pin, capacity: n, members: []*stubClient{client}}
	client.room = pin
	s.mu.Unlock()

	client.send(event.NameRoomCreated, map[string]string{"pin": pin})
}

func (s *RoomService) joinRoom(client *stubClient, pin string) {
	s.mu.Lock()
	room, ok := s.rooms[pin]
	if !ok {
		s.mu.Unlock()
		client.send(event.NameJoinError, map[string]string{"message": "La sala no existe"})
		return
	}
	if len(room.members) >= room.capacity {
		s.mu.Unlock()
		client.send(event.NameJoinError, map[string]string{"message": "Room full"})
		return
	}
	room.members = append(room.members, client)
	client.room = pin
	others := otherMembers(room, client)
	s.mu.Unlock()

	client.send(event.NameJoinSuccess, nil)
	for _, member := range others {
		member.send(event.NameUserJoined, map[string]string{"userId": client.id})
	}
}

// relay fans the message out to the other occupants only: the sender
// already echoed it locally.
func (s *RoomService) relay(client *stubClient, msg event.ChatPayload) {
	s.mu.Lock()
	room, ok := s.rooms[client.room]
	var others []*stubClient
	if ok {
		others = otherMembers(room, client)
	}
	s.mu.Unlock()

	for _, member := range others {
		member.send(event.NameReceiveMessage, msg)
	}
}

func (s *RoomService) dropClient(client *stubClient) {
	_ = client.conn.Close()

	s.mu.Lock()
	delete(s.clients, client)
	room, ok := s.rooms[client.room]
	var others []*stubClient
	if ok {
		room.members = otherMembers(room, client)
		others = append(others, room.members...)
	}
	s.mu.Unlock()

	for _, member := range others {
		member.send(event.NameUserLeft, map[string]string{"userId": client.id})
	}
}

func otherMembers(room *stubRoom, client *stubClient) []*stubClient {
	var out []*stubClient
	for _, member := range room.members {
		if member != client {
			out = append(out, member)
		}
	}
	return out
}
