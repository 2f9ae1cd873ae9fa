// Package navsync keeps a navigation tree in step with the site's pages.
//
// Synchronization runs as separate passes, each building a new tree from the
// previous one: Reconcile applies page additions, renames and removals and
// collects the pages whose menu parent does not exist yet as orphans;
// Finalize either rejects those orphans or nests them under placeholder
// nodes, and finally prunes placeholders left without children.
package navsync
