// Package admin implements shopadmin, the operator CLI of GopherShop. It
// creates and deletes accounts, issues bearer tokens and hashes passwords
// using the same services and auth core as the server.
package admin
