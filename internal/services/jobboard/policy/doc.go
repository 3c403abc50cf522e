// Package policy defines the job board authorization matrix.
//
// Every role/action/resource grant lives in one table so transport handlers
// and services call a single evaluator instead of comparing roles inline.
// Ownership requirements are expressed per row as a Scope and checked
// against the ownership fields of a Target.
package policy
