package azure

import (
	"net/url"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/c2fo/fixture"
)

// Options contains options necessary for the azure store
type Options struct {
	// ServiceURL is the blob service URL including the account, ie: http://localhost:49160/devstoreaccount1
	ServiceURL string `json:"serviceURL,omitempty"`

	// AccountName holds the storage account name for shared key authentication
	AccountName string `json:"accountName,omitempty"`

	// AccountKey holds the storage account key for shared key authentication
	AccountKey string `json:"accountKey,omitempty"`
}

// FromEndpoint returns Options for a derived service endpoint. The account name and key are carried in the
// endpoint's access key id and secret.
func FromEndpoint(ep fixture.ServiceEndpoint) (Options, error) {
	u, err := url.JoinPath(ep.URL(), ep.Credentials.AccessKeyID)
	if err != nil {
		return Options{}, err
	}
	return Options{
		ServiceURL:  u,
		AccountName: ep.Credentials.AccessKeyID,
		AccountKey:  ep.Credentials.SecretAccessKey,
	}, nil
}

func getClient(opts Options) (*azblob.Client, error) {
	cred, err := azblob.NewSharedKeyCredential(opts.AccountName, opts.AccountKey)
	if err != nil {
		return nil, err
	}
	return azblob.NewClientWithSharedKeyCredential(opts.ServiceURL, cred, nil)
}
