// Package integrations provides the shared HTTP plumbing for package
// registry clients: a thin client with caching, retry, and status-code
// classification. Registry-specific clients (e.g. [npm]) embed
// [Client] and add their endpoint logic on top.
//
// [npm]: github.com/depscout/depscout/pkg/integrations/npm
package integrations
