// Package storage keeps uploaded images.
//
// Images are addressed by a directory (see the Dir constants) and a file name.
// The file system backend writes below a root directory that the web server
// serves statically, the S3 backend writes objects into a bucket.
package storage
