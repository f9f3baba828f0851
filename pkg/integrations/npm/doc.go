// Package npm downloads source archives from the npm registry.
//
// Given an exact pinned package (name and version), the client derives the
// registry tarball URL and fetches the gzipped tar archive. Scoped names
// (@scope/base) are split into scope and basename path segments:
//
//	https://registry.npmjs.org/@scope/base/-/base-1.0.0.tgz
//	https://registry.npmjs.org/lodash/-/lodash-4.17.21.tgz
//
// Downloads go through the shared integrations client, so transient
// failures retry with backoff and archives are cached on disk.
package npm
