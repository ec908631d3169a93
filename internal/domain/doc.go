// Package domain contains the core business entities, value objects, and
// domain rules of the application: customers, payments, currencies and the
// phone number format policy. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
