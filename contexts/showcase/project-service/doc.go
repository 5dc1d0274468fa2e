// Package projectservice owns the project submission lifecycle inside
// the showcase context.
//
// The module covers intake (projects enter pending), the moderation
// state machine (approve/reject/feature/delete with role and
// prior-state checks), and the public/admin listing reads. Coupled
// writes, such as un-featuring a project while rejecting it, run in a
// single database transaction behind the repository port. Approval
// decisions are published through the transactional outbox so team
// notifications fire only after commit.
package projectservice
