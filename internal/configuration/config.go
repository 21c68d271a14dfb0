package configuration

import (
	"time"

	"github.com/adampresley/configinator"
)

type Config struct {
	AlbumTitle             string `flag:"title" env:"ALBUM_TITLE" default:"" description:"Album title for upload-single-album. Defaults to the directory name"`
	AssumeYes              bool   `flag:"yes" env:"ASSUME_YES" default:"false" description:"Answer yes to the confirmation prompt"`
	AwsEndpointUrl         string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"" description:"AWS endpoint URL for the backup mirror"`
	AwsRegion              string `flag:"awsregion" env:"AWS_REGION" default:"us-east-1" description:"AWS region"`
	AwsAccessKeyId         string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey     string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	BackupBucket           string `flag:"backupbucket" env:"BACKUP_BUCKET" default:"" description:"S3 bucket backups are mirrored to. Empty disables the mirror"`
	BackupFile             string `flag:"backup" env:"BACKUP_FILE" default:"albums_backup.json" description:"Local album backup file written before reordering and read when restoring"`
	BackupS3Key            string `flag:"backupkey" env:"BACKUP_S3_KEY" default:"" description:"Restore from this mirrored backup key, or 'latest', instead of the local file"`
	Directory              string `flag:"dir" env:"DIRECTORY" default:"" description:"Directory to upload with upload-single-album"`
	DryRun                 bool   `flag:"dryrun" env:"DRY_RUN" default:"false" description:"Show what would change without touching Flickr"`
	EndAlbum               string `flag:"end" env:"END_ALBUM" default:"" description:"Last directory name to upload (inclusive)"`
	FlickrApiKey           string `flag:"apikey" env:"FLICKR_API_KEY" default:"" description:"Flickr API key"`
	FlickrApiSecret        string `flag:"apisecret" env:"FLICKR_API_SECRET" default:"" description:"Flickr API secret"`
	FlickrBaseUrl          string `flag:"flickrurl" env:"FLICKR_BASE_URL" default:"" description:"Override the Flickr API host"`
	FlickrOAuthToken       string `flag:"oauthtoken" env:"FLICKR_OAUTH_TOKEN" default:"" description:"Flickr OAuth access token"`
	FlickrOAuthTokenSecret string `flag:"oauthsecret" env:"FLICKR_OAUTH_TOKEN_SECRET" default:"" description:"Flickr OAuth access token secret"`
	FlickrUserId           string `flag:"userid" env:"FLICKR_USER_ID" default:"" description:"Flickr user NSID. Defaults to the authenticated user"`
	JournalDSN             string `flag:"journal" env:"JOURNAL_DSN" default:"file:flickralbums.db" description:"Run journal database. Empty disables the journal"`
	LogLevel               string `flag:"loglevel" env:"LOG_LEVEL" default:"info" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	ManifestFile           string `flag:"manifest" env:"MANIFEST_FILE" default:"" description:"JSON or YAML file mapping album titles to photo ids"`
	MarkerPrefix           string `flag:"marker" env:"MARKER_PREFIX" default:"RT" description:"Title prefix of albums to rename"`
	MaxAttempts            int    `flag:"attempts" env:"MAX_ATTEMPTS" default:"3" description:"Attempts per operation for transient failures"`
	MaxUploadEdge          int    `flag:"maxedge" env:"MAX_UPLOAD_EDGE" default:"0" description:"Downscale JPEGs to this longest edge before upload. 0 uploads originals"`
	PageSize               int    `flag:"pagesize" env:"PAGE_SIZE" default:"500" description:"Items requested per page when listing"`
	Prefix                 string `flag:"prefix" env:"PREFIX" default:"" description:"Title prefix of albums to delete or reorder"`
	RenameRootMarker       string `flag:"root" env:"RENAME_ROOT_MARKER" default:"F:\\My Pictures\\Flickr Upload\\" description:"Folder path in album descriptions that precedes the album name"`
	RetryBaseDelay         string `flag:"retrydelay" env:"RETRY_BASE_DELAY" default:"2s" description:"First retry delay. Doubles on every retry"`
	RootFolder             string `flag:"photos" env:"ROOT_FOLDER" default:"F:\\My Pictures" description:"Folder scanned by upload-albums"`
	ScanWorkers            int    `flag:"scanworkers" env:"SCAN_WORKERS" default:"4" description:"Concurrent directory scanners"`
	SourceFolderName       string `flag:"source" env:"SOURCE_FOLDER_NAME" default:"Develops" description:"Subfolder of each album directory holding the photos to upload"`
	StartAlbum             string `flag:"start" env:"START_ALBUM" default:"" description:"First directory name to upload (inclusive)"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}

// RetryDelay parses RetryBaseDelay, falling back to two seconds.
func (c Config) RetryDelay() time.Duration {
	d, err := time.ParseDuration(c.RetryBaseDelay)

	if err != nil || d <= 0 {
		return 2 * time.Second
	}

	return d
}
