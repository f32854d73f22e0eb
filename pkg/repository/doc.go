// Package repository provides the data access layer for the Routarr application.
//
// It defines the Repository interface and implements it using BoltDB as the
// underlying storage engine. The repository stores routing decisions so the
// history API can show what was routed where and which filter won.
//
// The implementation uses BoltDB for embedded, serverless persistence with
// ACID guarantees and efficient concurrent access.
package repository
