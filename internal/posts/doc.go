// Package posts implements the content API for portfolio entries: public
// list/get reads and authenticated create/update/delete mutations, with
// optional server-side markdown rendering of descriptions.
package posts
