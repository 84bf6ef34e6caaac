package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskdesk/task-manager/internal/core/domain"
)

func TestOwnedFilter(t *testing.T) {
	id := primitive.NewObjectID()
	owner := primitive.NewObjectID()

	filter, ok := ownedFilter(id.Hex(), owner.Hex())
	if !ok {
		t.Fatal("expected valid filter")
	}
	if filter["_id"] != id || filter["user"] != owner {
		t.Fatalf("unexpected filter %v", filter)
	}

	if _, ok := ownedFilter("not-hex", owner.Hex()); ok {
		t.Fatal("malformed task id must not produce a filter")
	}
	if _, ok := ownedFilter(id.Hex(), ""); ok {
		t.Fatal("empty owner must not produce a filter")
	}
}

func TestPatchToSet(t *testing.T) {
	now := time.Date(2025, 1, 11, 9, 0, 0, 0, time.UTC)
	status := domain.StatusCompleted
	tags := []string{"done"}

	set := patchToSet(domain.TaskPatch{Status: &status, Tags: &tags, UpdatedAt: now})

	if set["status"] != "Completed" {
		t.Fatalf("expected status, got %v", set["status"])
	}
	if got, ok := set["tags"].([]string); !ok || len(got) != 1 {
		t.Fatalf("expected tags, got %v", set["tags"])
	}
	if set["updatedAt"] != now {
		t.Fatalf("expected updatedAt %v, got %v", now, set["updatedAt"])
	}
	for _, field := range []string{"title", "description", "dueDate", "priority"} {
		if _, present := set[field]; present {
			t.Errorf("omitted field %s must not be set", field)
		}
	}
}

func TestTaskDoc_ToDomain_NilTags(t *testing.T) {
	doc := taskDoc{ID: primitive.NewObjectID(), User: primitive.NewObjectID(), Status: "Pending"}
	task := doc.toDomain()
	if task.Tags == nil || len(task.Tags) != 0 {
		t.Fatalf("expected empty non-nil tags, got %#v", task.Tags)
	}
	if task.OwnerID != doc.User.Hex() {
		t.Fatalf("unexpected owner %q", task.OwnerID)
	}
}

func TestMessageDoc_ToDomain(t *testing.T) {
	receiver := primitive.NewObjectID()
	team := messageDoc{ID: primitive.NewObjectID(), Sender: primitive.NewObjectID(), ChatType: "team"}
	direct := messageDoc{ID: primitive.NewObjectID(), Sender: primitive.NewObjectID(), Receiver: &receiver, ChatType: "user"}

	if got := team.toDomain().ReceiverID; got != "" {
		t.Fatalf("team message must have no receiver, got %q", got)
	}
	if got := direct.toDomain().ReceiverID; got != receiver.Hex() {
		t.Fatalf("expected receiver %s, got %q", receiver.Hex(), got)
	}
}

func TestUserDoc_ToDomain(t *testing.T) {
	doc := userDoc{ID: primitive.NewObjectID(), Name: "Alice", Email: "alice@example.com", Password: "$2a$10$hash"}
	u := doc.toDomain()
	if u.ID != doc.ID.Hex() || u.Name != "Alice" || u.PasswordHash != "$2a$10$hash" {
		t.Fatalf("unexpected user %+v", u)
	}
}
