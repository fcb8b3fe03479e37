// Package hosts owns one delimited block inside the system hosts table and
// persists rewrites of the table.
//
// The block is bracketed by two identical marker lines:
//
//	# --+ Make Your Choice +--
//	0.0.0.0   gamelift.eu-west-2.amazonaws.com
//	# --+ Make Your Choice +--
//
// Everything outside the markers belongs to the user and is copied through
// byte for byte. A table with a single dangling marker is repaired by
// replacing everything from that marker to the end of the file.
//
// Persisting a document takes a best-effort backup, writes the table, then
// runs the platform's name-cache flush commands. Only the write can fail.
package hosts
