package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/five82/tracepanel/internal/widgets"
)

// service is a row of the widgets demo. The same items back the editor and
// the browser, so edits show up in both.
type service struct {
	id   uuid.UUID
	Name string
	Port int
}

// serviceData is the caller data handed to the service widgets.
type serviceData struct {
	DefaultPort int
}

func newService(data serviceData) *service {
	return &service{id: uuid.New(), Port: data.DefaultPort}
}

func demoServices() []*service {
	return []*service{
		{id: uuid.New(), Name: "ingest", Port: 7001},
		{id: uuid.New(), Name: "indexer", Port: 7002},
		{id: uuid.New(), Name: "gateway", Port: 443},
	}
}

func (s *service) Title(serviceData) string {
	name := s.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s :%d", name, s.Port)
}

func (s *service) NewTitle(serviceData) string { return "new service" }

func (s *service) Matches(query string, _ serviceData) bool {
	return strings.Contains(s.Name, query) || strings.Contains(strconv.Itoa(s.Port), query)
}

func (s *service) Fields(serviceData) []widgets.Field {
	return []widgets.Field{
		{Label: "id", Value: s.id.String()},
		{
			Label: "name",
			Value: s.Name,
			Set: func(v string) error {
				s.Name = strings.TrimSpace(v)
				return nil
			},
		},
		{
			Label: "port",
			Value: strconv.Itoa(s.Port),
			Set: func(v string) error {
				port, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil {
					return fmt.Errorf("port %q is not a number", v)
				}
				if port < 1 || port > 65535 {
					return fmt.Errorf("port %d out of range 1-65535", port)
				}
				s.Port = port
				return nil
			},
		},
	}
}

// Clone copies the service under a fresh ID.
func (s *service) Clone() *service {
	c := *s
	c.id = uuid.New()
	return &c
}

func (s *service) Label(data serviceData) string { return s.Title(data) }

func (s *service) ID(serviceData) string { return s.id.String() }

func (s *service) Detail(serviceData) string {
	return fmt.Sprintf("id   %s\nname %s\nport %d", s.id, s.Name, s.Port)
}
