// Package models defines the client-side data types of smarttask: users,
// tasks, task drafts and the filters applied to task lists.
//
// Wire decoding accepts both "_id" and "id" for identifiers, since the task
// API is document-store backed and exposes "_id".
package models
