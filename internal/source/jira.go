package source

import (
	"context"
	"fmt"

	"github.com/andygrunwald/go-jira"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/petr-muller/tixboard/internal/board"
	"github.com/petr-muller/tixboard/internal/flagutil"
	"github.com/petr-muller/tixboard/internal/mappings"
)

type jiraSearcher interface {
	SearchWithContext(context.Context, string, *jira.SearchOptions) ([]jira.Issue, *jira.Response, error)
}

// JiraSource builds the board from the issues matching a JQL query
type JiraSource struct {
	client   jiraSearcher
	jql      string
	mappings *mappings.Mappings
}

// NewJiraSource creates a Jira client using the shared flag options
func NewJiraSource(jiraOptions flagutil.JiraOptions, jql string, m *mappings.Mappings) (*JiraSource, error) {
	jiraClient, err := jiraOptions.Client()
	if err != nil {
		return nil, fmt.Errorf("failed to create JIRA client: %w", err)
	}
	logrus.WithFields(logrus.Fields{"endpoint": jiraOptions.Endpoint(), "jql": jql}).Debug("Using Jira as the ticket source")

	return newJiraSource(jiraClient, jql, m), nil
}

func newJiraSource(client jiraSearcher, jql string, m *mappings.Mappings) *JiraSource {
	if m == nil {
		m = mappings.NewMappings()
	}
	return &JiraSource{client: client, jql: jql, mappings: m}
}

// Load executes the query and converts the matching issues
func (s *JiraSource) Load(ctx context.Context) (board.Dataset, error) {
	issues, _, err := s.client.SearchWithContext(ctx, s.jql, nil)
	if err != nil {
		return board.Dataset{}, fmt.Errorf("failed to execute JQL query: %w", err)
	}

	var data board.Dataset
	seen := sets.New[string]()
	for _, issue := range issues {
		ticket, user := s.convertIssue(issue)
		data.Tickets = append(data.Tickets, ticket)
		if user != nil && !seen.Has(user.ID) {
			seen.Insert(user.ID)
			data.Users = append(data.Users, *user)
		}
	}

	return data, nil
}

// convertIssue converts a go-jira Issue to a ticket and its assignee
func (s *JiraSource) convertIssue(issue jira.Issue) (board.Ticket, *board.User) {
	ticket := board.Ticket{ID: issue.Key}
	if issue.Fields == nil {
		return ticket, nil
	}
	ticket.Title = issue.Fields.Summary

	if issue.Fields.Status != nil {
		ticket.Status = s.mappings.StatusFor(issue.Fields.Status.Name)
	}

	if issue.Fields.Priority != nil {
		ticket.Priority = s.mappings.PriorityFor(issue.Fields.Priority.Name)
	}

	// Labels first, component as a fallback
	if len(issue.Fields.Labels) > 0 {
		ticket.Tag = issue.Fields.Labels[0]
	} else if len(issue.Fields.Components) > 0 && issue.Fields.Components[0] != nil {
		ticket.Tag = issue.Fields.Components[0].Name
	}

	var user *board.User
	if assignee := issue.Fields.Assignee; assignee != nil {
		id := assignee.AccountID
		if id == "" {
			id = assignee.Name
		}
		ticket.UserID = id
		user = &board.User{ID: id, Name: assignee.DisplayName, Available: assignee.Active}
	}

	return ticket, user
}
